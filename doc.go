// The [mirrorkv] package decorates a key-value store client with dual-write
// shadow traffic for live cluster migrations.
//
// # Dual writes
//
// A [DualWriter] holds two independent clients for the same command surface:
// the target cluster, which is authoritative, and the origin cluster, which
// is being migrated away from. Every mutating command executes synchronously
// against the target and returns its result unchanged. A sampled subset of
// commands is additionally replayed against the origin, asynchronously and
// best effort, to keep it warm for rollback. Shadow writes never block the
// caller and their failures never surface; they are visible only through the
// failure sink.
//
// # Sampling
//
// The fraction of shadowed traffic is controlled by a dial. The default,
// [github.com/mirrorkv/mirrorkv.go/pkg/dial.TimestampDial], samples on
// wall-clock time; use [github.com/mirrorkv/mirrorkv.go/pkg/dial.KeyHashDial]
// for a decision that is deterministic per key. A command is shadowed only
// when, additionally, the dual-write flag is enabled and the origin pool is
// live, as reported by its
// [github.com/mirrorkv/mirrorkv.go/pkg/pool.StateProvider].
//
// # Shadow execution
//
// Shadow invocations run on a
// [github.com/mirrorkv/mirrorkv.go/pkg/shadow.Executor], a bounded worker
// pool with an explicit Start/Stop lifecycle meant to be shared
// process-wide. Failures anywhere on the shadow path, including pool
// saturation, are counted under the shadowPool_submit label by the
// configured sink.
//
// # Clients
//
// Origin and target implement
// [github.com/mirrorkv/mirrorkv.go/pkg/kv.Client].
// [github.com/mirrorkv/mirrorkv.go/pkg/kv.RPCClient] speaks CBOR-framed RPC
// over a websocket connection; any other implementation of the interface
// works just as well.
package mirrorkv
