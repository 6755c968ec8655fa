package connection

// RPCError is an error returned by the store for a single request.
type RPCError struct {
	Code    int    `json:"code" cbor:"code"`
	Message string `json:"message,omitempty" cbor:"message,omitempty"`
}

func (r *RPCError) Error() string {
	return r.Message
}

// RPCRequest is a single command sent to the store.
type RPCRequest struct {
	ID     string `json:"id" cbor:"id"`
	Method string `json:"method,omitempty" cbor:"method,omitempty"`
	Params []any  `json:"params,omitempty" cbor:"params,omitempty"`
}

// RPCResponse is the store's reply to the request with the matching ID.
type RPCResponse[T any] struct {
	ID     string    `json:"id" cbor:"id"`
	Error  *RPCError `json:"error,omitempty" cbor:"error,omitempty"`
	Result *T        `json:"result,omitempty" cbor:"result,omitempty"`
}
