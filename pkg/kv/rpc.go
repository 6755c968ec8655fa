package kv

import (
	"context"
	"time"

	"github.com/mirrorkv/mirrorkv.go/pkg/connection"
)

// RPCClient implements Client over a connection.Connection, one RPC call per
// command. It is safe for concurrent use if the underlying connection is.
type RPCClient struct {
	conn connection.Connection

	// Node labels results with the endpoint identity, for metadata only.
	Node string
}

// NewRPCClient wraps an already-connected connection.
func NewRPCClient(conn connection.Connection, node string) *RPCClient {
	return &RPCClient{conn: conn, Node: node}
}

func call[T any](c *RPCClient, method string, params ...any) (*Result[T], error) {
	start := time.Now()

	var value T
	if err := c.conn.Send(context.Background(), &value, method, params...); err != nil {
		return nil, err
	}

	return &Result[T]{
		Value:   value,
		Node:    c.Node,
		Latency: time.Since(start),
	}, nil
}

func (c *RPCClient) Set(key, value string) (*Result[string], error) {
	return call[string](c, "set", key, value)
}

func (c *RPCClient) SetEX(key string, seconds int64, value string) (*Result[string], error) {
	return call[string](c, "setex", key, seconds, value)
}

func (c *RPCClient) SetNX(key, value string) (*Result[int64], error) {
	return call[int64](c, "setnx", key, value)
}

func (c *RPCClient) Append(key, value string) (*Result[int64], error) {
	return call[int64](c, "append", key, value)
}

func (c *RPCClient) Incr(key string) (*Result[int64], error) {
	return call[int64](c, "incr", key)
}

func (c *RPCClient) IncrBy(key string, delta int64) (*Result[int64], error) {
	return call[int64](c, "incrby", key, delta)
}

func (c *RPCClient) Del(key string) (*Result[int64], error) {
	return call[int64](c, "del", key)
}

func (c *RPCClient) Exists(key string) (*Result[bool], error) {
	return call[bool](c, "exists", key)
}

func (c *RPCClient) Expire(key string, seconds int64) (*Result[int64], error) {
	return call[int64](c, "expire", key, seconds)
}

func (c *RPCClient) PExpire(key string, millis int64) (*Result[int64], error) {
	return call[int64](c, "pexpire", key, millis)
}

func (c *RPCClient) Persist(key string) (*Result[int64], error) {
	return call[int64](c, "persist", key)
}

func (c *RPCClient) Rename(src, dst string) (*Result[string], error) {
	return call[string](c, "rename", src, dst)
}

func (c *RPCClient) HSet(key, field, value string) (*Result[int64], error) {
	return call[int64](c, "hset", key, field, value)
}

func (c *RPCClient) HSetNX(key, field, value string) (*Result[int64], error) {
	return call[int64](c, "hsetnx", key, field, value)
}

func (c *RPCClient) HDel(key string, fields ...string) (*Result[int64], error) {
	return call[int64](c, "hdel", prepend(key, fields)...)
}

func (c *RPCClient) HMSet(key string, fields map[string]string) (*Result[string], error) {
	return call[string](c, "hmset", key, fields)
}

func (c *RPCClient) SAdd(key string, members ...string) (*Result[int64], error) {
	return call[int64](c, "sadd", prepend(key, members)...)
}

func (c *RPCClient) SRem(key string, members ...string) (*Result[int64], error) {
	return call[int64](c, "srem", prepend(key, members)...)
}

func (c *RPCClient) SPop(key string) (*Result[string], error) {
	return call[string](c, "spop", key)
}

func (c *RPCClient) SMove(src, dst, member string) (*Result[int64], error) {
	return call[int64](c, "smove", src, dst, member)
}

func (c *RPCClient) LPush(key string, values ...string) (*Result[int64], error) {
	return call[int64](c, "lpush", prepend(key, values)...)
}

func (c *RPCClient) RPush(key string, values ...string) (*Result[int64], error) {
	return call[int64](c, "rpush", prepend(key, values)...)
}

func (c *RPCClient) LPop(key string) (*Result[string], error) {
	return call[string](c, "lpop", key)
}

func (c *RPCClient) RPop(key string) (*Result[string], error) {
	return call[string](c, "rpop", key)
}

func (c *RPCClient) ZAdd(key string, score float64, member string) (*Result[int64], error) {
	return call[int64](c, "zadd", key, score, member)
}

func (c *RPCClient) ZRem(key string, members ...string) (*Result[int64], error) {
	return call[int64](c, "zrem", prepend(key, members)...)
}

func (c *RPCClient) ZIncrBy(key string, increment float64, member string) (*Result[float64], error) {
	return call[float64](c, "zincrby", key, increment, member)
}

func prepend(key string, rest []string) []any {
	params := make([]any, 0, len(rest)+1)
	params = append(params, key)
	for _, v := range rest {
		params = append(params, v)
	}
	return params
}
