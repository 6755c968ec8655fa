package mirrorkv

import "github.com/mirrorkv/mirrorkv.go/pkg/kv"

// The command surface. Each method is one line of real logic: bind the
// command's arguments into an origin closure and a target closure and hand
// them to execute. The eligibility key is the command's first key; commands
// addressing two keys (Rename, SMove) sample on the source key and pass the
// full key pair to both clusters.

func (dw *DualWriter) Set(key, value string) (string, error) {
	return execute(dw, key,
		func() (*kv.Result[string], error) { return dw.origin.Set(key, value) },
		func() (*kv.Result[string], error) { return dw.target.Set(key, value) },
	)
}

func (dw *DualWriter) SetEX(key string, seconds int64, value string) (string, error) {
	return execute(dw, key,
		func() (*kv.Result[string], error) { return dw.origin.SetEX(key, seconds, value) },
		func() (*kv.Result[string], error) { return dw.target.SetEX(key, seconds, value) },
	)
}

func (dw *DualWriter) SetNX(key, value string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.SetNX(key, value) },
		func() (*kv.Result[int64], error) { return dw.target.SetNX(key, value) },
	)
}

func (dw *DualWriter) Append(key, value string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.Append(key, value) },
		func() (*kv.Result[int64], error) { return dw.target.Append(key, value) },
	)
}

func (dw *DualWriter) Incr(key string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.Incr(key) },
		func() (*kv.Result[int64], error) { return dw.target.Incr(key) },
	)
}

func (dw *DualWriter) IncrBy(key string, delta int64) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.IncrBy(key, delta) },
		func() (*kv.Result[int64], error) { return dw.target.IncrBy(key, delta) },
	)
}

func (dw *DualWriter) Del(key string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.Del(key) },
		func() (*kv.Result[int64], error) { return dw.target.Del(key) },
	)
}

func (dw *DualWriter) Exists(key string) (bool, error) {
	return execute(dw, key,
		func() (*kv.Result[bool], error) { return dw.origin.Exists(key) },
		func() (*kv.Result[bool], error) { return dw.target.Exists(key) },
	)
}

func (dw *DualWriter) Expire(key string, seconds int64) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.Expire(key, seconds) },
		func() (*kv.Result[int64], error) { return dw.target.Expire(key, seconds) },
	)
}

func (dw *DualWriter) PExpire(key string, millis int64) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.PExpire(key, millis) },
		func() (*kv.Result[int64], error) { return dw.target.PExpire(key, millis) },
	)
}

func (dw *DualWriter) Persist(key string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.Persist(key) },
		func() (*kv.Result[int64], error) { return dw.target.Persist(key) },
	)
}

// Rename samples on src and replays the full (src, dst) pair on both sides.
func (dw *DualWriter) Rename(src, dst string) (string, error) {
	return execute(dw, src,
		func() (*kv.Result[string], error) { return dw.origin.Rename(src, dst) },
		func() (*kv.Result[string], error) { return dw.target.Rename(src, dst) },
	)
}

func (dw *DualWriter) HSet(key, field, value string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.HSet(key, field, value) },
		func() (*kv.Result[int64], error) { return dw.target.HSet(key, field, value) },
	)
}

func (dw *DualWriter) HSetNX(key, field, value string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.HSetNX(key, field, value) },
		func() (*kv.Result[int64], error) { return dw.target.HSetNX(key, field, value) },
	)
}

func (dw *DualWriter) HDel(key string, fields ...string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.HDel(key, fields...) },
		func() (*kv.Result[int64], error) { return dw.target.HDel(key, fields...) },
	)
}

func (dw *DualWriter) HMSet(key string, fields map[string]string) (string, error) {
	return execute(dw, key,
		func() (*kv.Result[string], error) { return dw.origin.HMSet(key, fields) },
		func() (*kv.Result[string], error) { return dw.target.HMSet(key, fields) },
	)
}

func (dw *DualWriter) SAdd(key string, members ...string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.SAdd(key, members...) },
		func() (*kv.Result[int64], error) { return dw.target.SAdd(key, members...) },
	)
}

func (dw *DualWriter) SRem(key string, members ...string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.SRem(key, members...) },
		func() (*kv.Result[int64], error) { return dw.target.SRem(key, members...) },
	)
}

func (dw *DualWriter) SPop(key string) (string, error) {
	return execute(dw, key,
		func() (*kv.Result[string], error) { return dw.origin.SPop(key) },
		func() (*kv.Result[string], error) { return dw.target.SPop(key) },
	)
}

// SMove samples on src and replays the full (src, dst, member) triple on
// both sides.
func (dw *DualWriter) SMove(src, dst, member string) (int64, error) {
	return execute(dw, src,
		func() (*kv.Result[int64], error) { return dw.origin.SMove(src, dst, member) },
		func() (*kv.Result[int64], error) { return dw.target.SMove(src, dst, member) },
	)
}

func (dw *DualWriter) LPush(key string, values ...string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.LPush(key, values...) },
		func() (*kv.Result[int64], error) { return dw.target.LPush(key, values...) },
	)
}

func (dw *DualWriter) RPush(key string, values ...string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.RPush(key, values...) },
		func() (*kv.Result[int64], error) { return dw.target.RPush(key, values...) },
	)
}

func (dw *DualWriter) LPop(key string) (string, error) {
	return execute(dw, key,
		func() (*kv.Result[string], error) { return dw.origin.LPop(key) },
		func() (*kv.Result[string], error) { return dw.target.LPop(key) },
	)
}

func (dw *DualWriter) RPop(key string) (string, error) {
	return execute(dw, key,
		func() (*kv.Result[string], error) { return dw.origin.RPop(key) },
		func() (*kv.Result[string], error) { return dw.target.RPop(key) },
	)
}

func (dw *DualWriter) ZAdd(key string, score float64, member string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.ZAdd(key, score, member) },
		func() (*kv.Result[int64], error) { return dw.target.ZAdd(key, score, member) },
	)
}

func (dw *DualWriter) ZRem(key string, members ...string) (int64, error) {
	return execute(dw, key,
		func() (*kv.Result[int64], error) { return dw.origin.ZRem(key, members...) },
		func() (*kv.Result[int64], error) { return dw.target.ZRem(key, members...) },
	)
}

func (dw *DualWriter) ZIncrBy(key string, increment float64, member string) (float64, error) {
	return execute(dw, key,
		func() (*kv.Result[float64], error) { return dw.origin.ZIncrBy(key, increment, member) },
		func() (*kv.Result[float64], error) { return dw.target.ZIncrBy(key, increment, member) },
	)
}
