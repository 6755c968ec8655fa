package mirrorkv_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorkv/mirrorkv.go"
	"github.com/mirrorkv/mirrorkv.go/pkg/config"
)

// clusterStub is a scripted store endpoint counting the commands it serves.
type clusterStub struct {
	upgrader gorilla.Upgrader
	writes   atomic.Int64
}

func (s *clusterStub) handler(w http.ResponseWriter, r *http.Request) {
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

		var req struct {
			ID     string `cbor:"id"`
			Method string `cbor:"method"`
		}
		if err := cbor.Unmarshal(data, &req); err != nil {
			return
		}
		s.writes.Add(1)

		out, err := cbor.Marshal(map[string]any{"id": req.ID, "result": "OK"})
		if err != nil {
			return
		}
		if err := conn.WriteMessage(gorilla.BinaryMessage, out); err != nil {
			return
		}
	}
}

func (s *clusterStub) waitForWrites(n int64, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s.writes.Load() >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func startClusterStub(t *testing.T) (*clusterStub, string) {
	t.Helper()
	stub := &clusterStub{}
	server := httptest.NewServer(http.HandlerFunc(stub.handler))
	t.Cleanup(server.Close)
	return stub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestFromConfigShadowsToOrigin(t *testing.T) {
	origin, originURL := startClusterStub(t)
	target, targetURL := startClusterStub(t)

	conf := &config.File{
		DualWrite: config.DualWriteConfig{Enabled: true, Percentage: 100},
		Shadow:    config.ShadowConfig{Workers: 1, QueueSize: 16},
		Origin:    config.EndpointConfig{URL: originURL, Name: "origin"},
		Target:    config.EndpointConfig{URL: targetURL, Name: "target"},
	}

	dw, err := mirrorkv.FromConfig(context.Background(), conf)
	require.NoError(t, err)
	defer dw.Close()

	got, err := dw.Set("userA", "v1")
	require.NoError(t, err)
	assert.Equal(t, "OK", got)

	assert.Equal(t, int64(1), target.writes.Load())
	assert.True(t, origin.waitForWrites(1, 2*time.Second), "shadow write should reach the origin")
}

func TestFromConfigToleratesUnreachableOrigin(t *testing.T) {
	target, targetURL := startClusterStub(t)

	conf := &config.File{
		DualWrite: config.DualWriteConfig{Enabled: true, Percentage: 100},
		Origin:    config.EndpointConfig{URL: "ws://127.0.0.1:1/rpc", Name: "origin"},
		Target:    config.EndpointConfig{URL: targetURL, Name: "target"},
	}

	dw, err := mirrorkv.FromConfig(context.Background(), conf)
	require.NoError(t, err, "an unreachable origin must not fail construction")
	defer dw.Close()

	got, err := dw.Set("userA", "v1")
	require.NoError(t, err)
	assert.Equal(t, "OK", got)
	assert.Equal(t, int64(1), target.writes.Load())
}

func TestFromConfigRequiresTarget(t *testing.T) {
	conf := &config.File{
		Target: config.EndpointConfig{URL: "ws://127.0.0.1:1/rpc", Name: "target"},
	}

	_, err := mirrorkv.FromConfig(context.Background(), conf)
	assert.Error(t, err)
}

func TestFromConfigFile(t *testing.T) {
	target, targetURL := startClusterStub(t)

	path := filepath.Join(t.TempDir(), "mirrorkv.yaml")
	content := `
dual_write:
  enabled: false
  percentage: 0
target:
  url: ` + targetURL + `
  name: target
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	dw, err := mirrorkv.FromConfigFile(context.Background(), path)
	require.NoError(t, err)
	defer dw.Close()

	got, err := dw.Set("userA", "v1")
	require.NoError(t, err)
	assert.Equal(t, "OK", got)
	assert.Equal(t, int64(1), target.writes.Load())
}
