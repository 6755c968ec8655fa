// Package pool exposes the connection-pool state the shadow-eligibility check
// depends on. The decorator only consumes the StateProvider contract; Registry
// is a concrete provider for embedders that track host pools in-process.
package pool

import "sync"

// StateProvider is the read side of the origin connection pool as seen by the
// eligibility gate. It is queried fresh on every operation, never cached,
// since pool topology changes at runtime.
type StateProvider interface {
	// IsDualWriteEnabled reports the dual-write feature flag.
	IsDualWriteEnabled() bool

	// DualWritePercentage returns the configured sampling percentage in
	// [0,100]. It seeds the dial at construction; the dial owns the value
	// afterwards.
	DualWritePercentage() int

	// IsIdle reports whether the pool has no usable connections. A pool can
	// hold active host pools yet still be idle, for example when security
	// groups block every connect.
	IsIdle() bool

	// ActivePools returns the host pools currently marked up. Only the
	// length matters to the eligibility check.
	ActivePools() []string
}

// Registry is a mutex-guarded StateProvider tracking per-host liveness and
// the dual-write settings. The zero value is unusable; use NewRegistry.
type Registry struct {
	mu         sync.RWMutex
	hosts      map[string]bool
	enabled    bool
	percentage int
}

// NewRegistry returns an empty Registry with the given dual-write settings.
// An empty Registry is idle until a host is marked up.
func NewRegistry(enabled bool, percentage int) *Registry {
	return &Registry{
		hosts:      make(map[string]bool),
		enabled:    enabled,
		percentage: percentage,
	}
}

// MarkUp records host as usable, adding it if unknown.
func (r *Registry) MarkUp(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hosts[host] = true
}

// MarkDown records host as unusable. The host stays registered so a later
// MarkUp restores it.
func (r *Registry) MarkDown(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hosts[host] = false
}

// Remove forgets host entirely.
func (r *Registry) Remove(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hosts, host)
}

// SetDualWrite overwrites the feature flag and sampling percentage.
func (r *Registry) SetDualWrite(enabled bool, percentage int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
	r.percentage = percentage
}

func (r *Registry) IsDualWriteEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

func (r *Registry) DualWritePercentage() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.percentage
}

func (r *Registry) IsIdle() bool {
	return len(r.ActivePools()) == 0
}

func (r *Registry) ActivePools() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]string, 0, len(r.hosts))
	for host, up := range r.hosts {
		if up {
			active = append(active, host)
		}
	}
	return active
}
