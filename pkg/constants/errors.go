package constants

import "errors"

var (
	ErrIDInUse       = errors.New("id already in use")
	ErrTimeout       = errors.New("timeout")
	ErrClosed        = errors.New("connection closed")
	ErrNotConnected  = errors.New("not connected")
	ErrNoBaseURL     = errors.New("base url not set")
	ErrNoMarshaler   = errors.New("marshaler is not set")
	ErrNoUnmarshaler = errors.New("unmarshaler is not set")
)
