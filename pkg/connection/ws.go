package connection

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"log/slog"

	"github.com/fxamacker/cbor/v2"
	"github.com/gofrs/uuid"
	gorilla "github.com/gorilla/websocket"

	"github.com/mirrorkv/mirrorkv.go/pkg/constants"
	"github.com/mirrorkv/mirrorkv.go/pkg/logger"
)

// DefaultDialer is the gorilla dialer used by WebSocketConnection. It is the
// default gorilla dialer with compression enabled and the cbor subprotocol.
var DefaultDialer = &gorilla.Dialer{
	Proxy:             gorilla.DefaultDialer.Proxy,
	HandshakeTimeout:  gorilla.DefaultDialer.HandshakeTimeout,
	EnableCompression: true,
	Subprotocols:      []string{"cbor"},
}

// WebSocketConnection speaks CBOR-framed RPC over a websocket. One goroutine
// reads every frame and routes responses by request ID; writers serialize on
// connLock.
type WebSocketConnection struct {
	Toolkit

	Conn     *gorilla.Conn
	connLock sync.Mutex

	// Timeout bounds the wait for the RPC response after the request was
	// written. Zero disables it; use context deadlines instead.
	Timeout time.Duration

	closeChan chan struct{}
	closeOnce sync.Once
}

// NewWebSocketConnection builds an unconnected engine for p.BaseURL.
func NewWebSocketConnection(p NewConnectionParams) *WebSocketConnection {
	l := p.Logger
	if l == nil {
		l = logger.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	return &WebSocketConnection{
		Toolkit: Toolkit{
			baseURL:     p.BaseURL,
			marshaler:   p.Marshaler,
			unmarshaler: p.Unmarshaler,
			logger:      l,

			responseChannels: make(map[string]chan RPCResponse[cbor.RawMessage]),
		},

		Timeout:   constants.DefaultWSTimeout,
		closeChan: make(chan struct{}),
	}
}

func (ws *WebSocketConnection) Connect(ctx context.Context) error {
	if err := ws.preConnectionChecks(); err != nil {
		return err
	}

	conn, res, err := DefaultDialer.DialContext(ctx, ws.baseURL, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	ws.Conn = conn

	go ws.readLoop()
	return nil
}

// Close sends the websocket close message and tears the connection down. The
// context bounds the close-message write; the local teardown happens
// regardless so resources are not leaked.
func (ws *WebSocketConnection) Close(ctx context.Context) error {
	ws.connLock.Lock()
	defer ws.connLock.Unlock()

	if ws.Conn == nil {
		return constants.ErrNotConnected
	}

	ws.closeOnce.Do(func() { close(ws.closeChan) })

	writeErr := make(chan error, 1)
	go func() {
		writeErr <- ws.Conn.WriteMessage(
			gorilla.CloseMessage,
			gorilla.FormatCloseMessage(constants.CloseMessageCode, ""),
		)
	}()

	select {
	case err := <-writeErr:
		if err != nil {
			// Best effort: still close locally below.
			ws.logger.Error("failed to write close message", "error", err)
		}
	case <-ctx.Done():
	}

	return ws.Conn.Close()
}

func (ws *WebSocketConnection) Send(ctx context.Context, dest any, method string, params ...any) error {
	if ws.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ws.Timeout)
		defer cancel()
	}

	select {
	case <-ws.closeChan:
		return constants.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	id := uuid.Must(uuid.NewV4()).String()
	request := &RPCRequest{
		ID:     id,
		Method: method,
		Params: params,
	}

	responseChan, err := ws.createResponseChannel(id)
	if err != nil {
		return err
	}
	defer ws.removeResponseChannel(id)

	if err := ws.write(request); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ws.closeChan:
		return constants.ErrClosed
	case res, open := <-responseChan:
		if !open {
			return constants.ErrClosed
		}
		return ws.unmarshalRes(res, dest)
	}
}

func (ws *WebSocketConnection) write(v any) error {
	data, err := ws.marshaler.Marshal(v)
	if err != nil {
		return err
	}

	ws.connLock.Lock()
	defer ws.connLock.Unlock()

	if ws.Conn == nil {
		return constants.ErrNotConnected
	}
	return ws.Conn.WriteMessage(gorilla.BinaryMessage, data)
}

func (ws *WebSocketConnection) readLoop() {
	for {
		select {
		case <-ws.closeChan:
			return
		default:
		}

		_, data, err := ws.Conn.ReadMessage()
		if err != nil {
			select {
			case <-ws.closeChan:
			default:
				ws.logger.Error("error reading from connection", "error", err)
			}
			return
		}

		var res RPCResponse[cbor.RawMessage]
		if err := ws.unmarshaler.Unmarshal(data, &res); err != nil {
			ws.logger.Error("error unmarshaling response", "error", err)
			continue
		}

		ch, ok := ws.getResponseChannel(res.ID)
		if !ok {
			// Response for a request that already timed out.
			ws.logger.Debug("unroutable response", "id", res.ID)
			continue
		}
		ch <- res
	}
}

// unmarshalRes surfaces the store-side error if any, then decodes the raw
// result bytes into dest. dest == nil discards the result.
func (ws *WebSocketConnection) unmarshalRes(res RPCResponse[cbor.RawMessage], dest any) error {
	if res.Error != nil {
		return res.Error
	}
	if dest == nil || res.Result == nil {
		return nil
	}

	raw, err := res.Result.MarshalCBOR()
	if err != nil {
		return fmt.Errorf("Send: error marshaling result: %w", err)
	}
	if err := ws.unmarshaler.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("Send: error unmarshaling result: %w", err)
	}

	return nil
}
