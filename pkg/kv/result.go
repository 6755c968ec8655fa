package kv

import "time"

// Result wraps a command's value with execution metadata. Callers of the
// dual-writer surface get the plain value; the wrapper exists for embedders
// that want the metadata of the authoritative call.
type Result[T any] struct {
	// Value is the command's return value.
	Value T

	// Node identifies the cluster node that served the call, when known.
	Node string

	// Latency is the wall time of the call as observed by the client.
	Latency time.Duration
}
