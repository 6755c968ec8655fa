package dial

import (
	"hash/fnv"
	"sync/atomic"
)

// KeyHashDial is a deterministic alternative to TimestampDial: the verdict is
// a pure function of the key for a given threshold, so the same key is either
// always shadowed or never shadowed until the dial is retuned. Keys spread
// uniformly over 100 buckets via FNV-1a.
type KeyHashDial struct {
	threshold atomic.Int32
}

// NewKeyHashDial returns a KeyHashDial at the given initial percentage.
func NewKeyHashDial(pct int) *KeyHashDial {
	d := &KeyHashDial{}
	d.SetRange(pct)
	return d
}

func (d *KeyHashDial) InRange(key string) bool {
	return d.threshold.Load() > int32(bucket(key))
}

func (d *KeyHashDial) SetRange(pct int) {
	d.threshold.Store(int32(clamp(pct)))
}

func bucket(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32() % 100
}
