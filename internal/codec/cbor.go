package codec

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// CborMarshaler encodes requests in CBOR with RFC 3339 timestamps.
type CborMarshaler struct{}

func (CborMarshaler) Marshal(v any) ([]byte, error) {
	em := getEncMode()
	return em.Marshal(v)
}

func (CborMarshaler) NewEncoder(w io.Writer) Encoder {
	em := getEncMode()
	return em.NewEncoder(w)
}

// CborUnmarshaler decodes CBOR responses.
type CborUnmarshaler struct{}

func (CborUnmarshaler) Unmarshal(data []byte, dst any) error {
	return cbor.Unmarshal(data, dst)
}

func (CborUnmarshaler) NewDecoder(r io.Reader) Decoder {
	return cbor.NewDecoder(r)
}

func getEncMode() cbor.EncMode {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}
