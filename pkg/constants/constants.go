package constants

import "time"

const (
	// DefaultWSTimeout bounds the wait for an RPC response after a request
	// was written successfully.
	DefaultWSTimeout = 30 * time.Second

	// CloseMessageCode is the websocket close code sent on graceful close.
	CloseMessageCode = 1000
)
