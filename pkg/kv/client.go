// Package kv defines the command capability shared by the origin and target
// clusters. The dual-writer holds two independent Clients and never cares
// which concrete implementation backs either one.
package kv

// Client is the mutating command surface of one cluster. Every method is
// synchronous; values use the store's native semantics (integer replies count
// affected elements, string replies carry status or popped values).
type Client interface {
	// Strings.
	Set(key, value string) (*Result[string], error)
	SetEX(key string, seconds int64, value string) (*Result[string], error)
	SetNX(key, value string) (*Result[int64], error)
	Append(key, value string) (*Result[int64], error)
	Incr(key string) (*Result[int64], error)
	IncrBy(key string, delta int64) (*Result[int64], error)

	// Keys.
	Del(key string) (*Result[int64], error)
	Exists(key string) (*Result[bool], error)
	Expire(key string, seconds int64) (*Result[int64], error)
	PExpire(key string, millis int64) (*Result[int64], error)
	Persist(key string) (*Result[int64], error)
	// Rename moves the value at src to dst, replacing any existing value.
	Rename(src, dst string) (*Result[string], error)

	// Hashes.
	HSet(key, field, value string) (*Result[int64], error)
	HSetNX(key, field, value string) (*Result[int64], error)
	HDel(key string, fields ...string) (*Result[int64], error)
	HMSet(key string, fields map[string]string) (*Result[string], error)

	// Sets.
	SAdd(key string, members ...string) (*Result[int64], error)
	SRem(key string, members ...string) (*Result[int64], error)
	SPop(key string) (*Result[string], error)
	// SMove atomically moves member from the set at src to the set at dst.
	SMove(src, dst, member string) (*Result[int64], error)

	// Lists.
	LPush(key string, values ...string) (*Result[int64], error)
	RPush(key string, values ...string) (*Result[int64], error)
	LPop(key string) (*Result[string], error)
	RPop(key string) (*Result[string], error)

	// Sorted sets.
	ZAdd(key string, score float64, member string) (*Result[int64], error)
	ZRem(key string, members ...string) (*Result[int64], error)
	ZIncrBy(key string, increment float64, member string) (*Result[float64], error)
}
