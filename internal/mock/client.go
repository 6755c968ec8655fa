// Package mock provides scripted collaborators for tests.
package mock

import (
	"sync"
	"time"

	"github.com/mirrorkv/mirrorkv.go/pkg/kv"
)

// Invocation is one recorded command call.
type Invocation struct {
	Op   string
	Key  string
	Args []any
}

// Client is a scripted kv.Client. Every command records its invocation, then
// returns the configured error or the configured value for its result type.
type Client struct {
	mu          sync.Mutex
	invocations []Invocation

	// Err, when set, is returned by every command.
	Err error

	// Scripted return values by result type.
	StringValue string
	IntValue    int64
	FloatValue  float64
	BoolValue   bool

	// Node labels returned results.
	Node string
}

func (c *Client) record(op, key string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invocations = append(c.invocations, Invocation{Op: op, Key: key, Args: args})
}

// Invocations returns a copy of every recorded call so far.
func (c *Client) Invocations() []Invocation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Invocation(nil), c.invocations...)
}

// Calls counts recorded invocations of op; op == "" counts all of them.
func (c *Client) Calls(op string) int {
	n := 0
	for _, inv := range c.Invocations() {
		if op == "" || inv.Op == op {
			n++
		}
	}
	return n
}

// WaitForCalls polls until at least n invocations of op were recorded or the
// timeout elapses, and reports whether the count was reached. Useful for
// asserting on asynchronously executed shadow invocations.
func (c *Client) WaitForCalls(op string, n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if c.Calls(op) >= n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

func result[T any](c *Client, value T) (*kv.Result[T], error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return &kv.Result[T]{Value: value, Node: c.Node}, nil
}

func (c *Client) str(op, key string, args ...any) (*kv.Result[string], error) {
	c.record(op, key, args...)
	return result(c, c.StringValue)
}

func (c *Client) num(op, key string, args ...any) (*kv.Result[int64], error) {
	c.record(op, key, args...)
	return result(c, c.IntValue)
}

func (c *Client) flt(op, key string, args ...any) (*kv.Result[float64], error) {
	c.record(op, key, args...)
	return result(c, c.FloatValue)
}

func (c *Client) Set(key, value string) (*kv.Result[string], error) {
	return c.str("set", key, value)
}

func (c *Client) SetEX(key string, seconds int64, value string) (*kv.Result[string], error) {
	return c.str("setex", key, seconds, value)
}

func (c *Client) SetNX(key, value string) (*kv.Result[int64], error) {
	return c.num("setnx", key, value)
}

func (c *Client) Append(key, value string) (*kv.Result[int64], error) {
	return c.num("append", key, value)
}

func (c *Client) Incr(key string) (*kv.Result[int64], error) {
	return c.num("incr", key)
}

func (c *Client) IncrBy(key string, delta int64) (*kv.Result[int64], error) {
	return c.num("incrby", key, delta)
}

func (c *Client) Del(key string) (*kv.Result[int64], error) {
	return c.num("del", key)
}

func (c *Client) Exists(key string) (*kv.Result[bool], error) {
	c.record("exists", key)
	return result(c, c.BoolValue)
}

func (c *Client) Expire(key string, seconds int64) (*kv.Result[int64], error) {
	return c.num("expire", key, seconds)
}

func (c *Client) PExpire(key string, millis int64) (*kv.Result[int64], error) {
	return c.num("pexpire", key, millis)
}

func (c *Client) Persist(key string) (*kv.Result[int64], error) {
	return c.num("persist", key)
}

func (c *Client) Rename(src, dst string) (*kv.Result[string], error) {
	return c.str("rename", src, dst)
}

func (c *Client) HSet(key, field, value string) (*kv.Result[int64], error) {
	return c.num("hset", key, field, value)
}

func (c *Client) HSetNX(key, field, value string) (*kv.Result[int64], error) {
	return c.num("hsetnx", key, field, value)
}

func (c *Client) HDel(key string, fields ...string) (*kv.Result[int64], error) {
	return c.num("hdel", key, anySlice(fields)...)
}

func (c *Client) HMSet(key string, fields map[string]string) (*kv.Result[string], error) {
	return c.str("hmset", key, fields)
}

func (c *Client) SAdd(key string, members ...string) (*kv.Result[int64], error) {
	return c.num("sadd", key, anySlice(members)...)
}

func (c *Client) SRem(key string, members ...string) (*kv.Result[int64], error) {
	return c.num("srem", key, anySlice(members)...)
}

func (c *Client) SPop(key string) (*kv.Result[string], error) {
	return c.str("spop", key)
}

func (c *Client) SMove(src, dst, member string) (*kv.Result[int64], error) {
	return c.num("smove", src, dst, member)
}

func (c *Client) LPush(key string, values ...string) (*kv.Result[int64], error) {
	return c.num("lpush", key, anySlice(values)...)
}

func (c *Client) RPush(key string, values ...string) (*kv.Result[int64], error) {
	return c.num("rpush", key, anySlice(values)...)
}

func (c *Client) LPop(key string) (*kv.Result[string], error) {
	return c.str("lpop", key)
}

func (c *Client) RPop(key string) (*kv.Result[string], error) {
	return c.str("rpop", key)
}

func (c *Client) ZAdd(key string, score float64, member string) (*kv.Result[int64], error) {
	return c.num("zadd", key, score, member)
}

func (c *Client) ZRem(key string, members ...string) (*kv.Result[int64], error) {
	return c.num("zrem", key, anySlice(members)...)
}

func (c *Client) ZIncrBy(key string, increment float64, member string) (*kv.Result[float64], error) {
	return c.flt("zincrby", key, increment, member)
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
