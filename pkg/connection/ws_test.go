package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorkv/mirrorkv.go/internal/codec"
	"github.com/mirrorkv/mirrorkv.go/pkg/constants"
)

// fakeStore upgrades incoming connections and answers each RPC request with a
// scripted result keyed by method.
type fakeStore struct {
	upgrader gorilla.Upgrader
	results  map[string]any
	errors   map[string]*RPCError
}

func (s *fakeStore) handler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req RPCRequest
		if err := cbor.Unmarshal(data, &req); err != nil {
			return
		}

		res := map[string]any{"id": req.ID}
		if rpcErr, ok := s.errors[req.Method]; ok {
			res["error"] = rpcErr
		} else {
			res["result"] = s.results[req.Method]
		}

		out, err := cbor.Marshal(res)
		if err != nil {
			return
		}
		if err := conn.WriteMessage(gorilla.BinaryMessage, out); err != nil {
			return
		}
	}
}

func startFakeStore(t *testing.T, store *fakeStore) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(store.handler))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func newTestConnection(t *testing.T, url string) *WebSocketConnection {
	t.Helper()
	ws := NewWebSocketConnection(NewConnectionParams{
		BaseURL:     url,
		Marshaler:   codec.CborMarshaler{},
		Unmarshaler: codec.CborUnmarshaler{},
	})
	require.NoError(t, ws.Connect(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = ws.Close(ctx)
	})
	return ws
}

func TestSendRoutesResponseByID(t *testing.T) {
	store := &fakeStore{results: map[string]any{
		"set":  "OK",
		"incr": int64(42),
	}}
	ws := newTestConnection(t, startFakeStore(t, store))

	var status string
	require.NoError(t, ws.Send(context.Background(), &status, "set", "userA", "v"))
	assert.Equal(t, "OK", status)

	var n int64
	require.NoError(t, ws.Send(context.Background(), &n, "incr", "counter"))
	assert.Equal(t, int64(42), n)
}

func TestSendSurfacesStoreError(t *testing.T) {
	store := &fakeStore{errors: map[string]*RPCError{
		"rename": {Code: 10, Message: "no such key"},
	}}
	ws := newTestConnection(t, startFakeStore(t, store))

	var status string
	err := ws.Send(context.Background(), &status, "rename", "a", "b")
	require.Error(t, err)

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "no such key", rpcErr.Message)
}

func TestSendNilDestDiscardsResult(t *testing.T) {
	store := &fakeStore{results: map[string]any{"del": int64(1)}}
	ws := newTestConnection(t, startFakeStore(t, store))

	require.NoError(t, ws.Send(context.Background(), nil, "del", "userA"))
}

func TestSendAfterCloseFails(t *testing.T) {
	store := &fakeStore{results: map[string]any{}}
	ws := newTestConnection(t, startFakeStore(t, store))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, ws.Close(ctx))

	err := ws.Send(context.Background(), nil, "set", "k", "v")
	assert.ErrorIs(t, err, constants.ErrClosed)
}

func TestConnectValidatesParams(t *testing.T) {
	ws := NewWebSocketConnection(NewConnectionParams{})
	assert.ErrorIs(t, ws.Connect(context.Background()), constants.ErrNoBaseURL)

	ws = NewWebSocketConnection(NewConnectionParams{BaseURL: "ws://localhost:0"})
	assert.ErrorIs(t, ws.Connect(context.Background()), constants.ErrNoMarshaler)
}
