// Package connection provides the wire transport the RPC client speaks
// through, one engine per cluster endpoint.
package connection

import (
	"context"

	"github.com/fxamacker/cbor/v2"
	"sync"

	"github.com/mirrorkv/mirrorkv.go/internal/codec"
	"github.com/mirrorkv/mirrorkv.go/pkg/constants"
	"github.com/mirrorkv/mirrorkv.go/pkg/logger"
)

// Connection is a single-endpoint transport. Send is safe for concurrent use.
type Connection interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	// Send issues one request and decodes the result into dest unless dest
	// is nil. A store-side error is returned as *RPCError.
	Send(ctx context.Context, dest any, method string, params ...any) error
}

// NewConnectionParams configures a connection engine.
type NewConnectionParams struct {
	BaseURL     string
	Marshaler   codec.Marshaler
	Unmarshaler codec.Unmarshaler
	Logger      logger.Logger
}

// Toolkit carries the response routing shared by connection engines:
// responses arrive on one read loop and are handed to the goroutine that
// wrote the request with the matching ID.
type Toolkit struct {
	baseURL     string
	marshaler   codec.Marshaler
	unmarshaler codec.Unmarshaler
	logger      logger.Logger

	responseChannels     map[string]chan RPCResponse[cbor.RawMessage]
	responseChannelsLock sync.RWMutex
}

func (tk *Toolkit) createResponseChannel(id string) (chan RPCResponse[cbor.RawMessage], error) {
	tk.responseChannelsLock.Lock()
	defer tk.responseChannelsLock.Unlock()

	if _, ok := tk.responseChannels[id]; ok {
		return nil, constants.ErrIDInUse
	}

	ch := make(chan RPCResponse[cbor.RawMessage], 1)
	tk.responseChannels[id] = ch

	return ch, nil
}

func (tk *Toolkit) removeResponseChannel(id string) {
	tk.responseChannelsLock.Lock()
	defer tk.responseChannelsLock.Unlock()
	delete(tk.responseChannels, id)
}

func (tk *Toolkit) getResponseChannel(id string) (chan RPCResponse[cbor.RawMessage], bool) {
	tk.responseChannelsLock.RLock()
	defer tk.responseChannelsLock.RUnlock()
	ch, ok := tk.responseChannels[id]

	return ch, ok
}

func (tk *Toolkit) preConnectionChecks() error {
	if tk.baseURL == "" {
		return constants.ErrNoBaseURL
	}
	if tk.marshaler == nil {
		return constants.ErrNoMarshaler
	}
	if tk.unmarshaler == nil {
		return constants.ErrNoUnmarshaler
	}

	return nil
}
