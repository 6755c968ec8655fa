// Package eligibility combines the dial verdict with the pool's environmental
// signals into the single shadow/no-shadow decision.
package eligibility

import (
	"github.com/mirrorkv/mirrorkv.go/pkg/dial"
	"github.com/mirrorkv/mirrorkv.go/pkg/pool"
)

// Gate gates shadow dispatch on the state of the origin pool and the dial.
type Gate struct {
	Provider pool.StateProvider
	Dial     dial.Dial
}

// ShouldShadow reports whether the operation for key qualifies for a shadow
// write. True iff all of:
//
//   - the dual-write feature flag is enabled
//   - the origin pool is not idle
//   - the origin pool has at least one active host pool (the origin cluster
//     may disappear at any time and we don't want to bloat logs)
//   - the key is in range in the dial
//
// Evaluation short-circuits in that order. No side effects, no logging: this
// sits on the hot path of every mutating operation.
//
// A panicking provider yields false; a broken pool-state source must never be
// able to touch the target path.
func (g Gate) ShouldShadow(key string) (eligible bool) {
	defer func() {
		if recover() != nil {
			eligible = false
		}
	}()

	return g.Provider.IsDualWriteEnabled() &&
		!g.Provider.IsIdle() &&
		len(g.Provider.ActivePools()) > 0 &&
		g.Dial.InRange(key)
}
