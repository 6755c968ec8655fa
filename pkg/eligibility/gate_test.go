package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirrorkv/mirrorkv.go/pkg/dial"
)

type stubProvider struct {
	enabled bool
	idle    bool
	active  []string
	panics  bool
}

func (p stubProvider) IsDualWriteEnabled() bool {
	if p.panics {
		panic("pool state unavailable")
	}
	return p.enabled
}

func (p stubProvider) DualWritePercentage() int { return 100 }
func (p stubProvider) IsIdle() bool             { return p.idle }
func (p stubProvider) ActivePools() []string    { return p.active }

func TestShouldShadowTruthTable(t *testing.T) {
	hosts := []string{"host-a"}

	tests := []struct {
		name     string
		provider stubProvider
		pct      int
		want     bool
	}{
		{"all conditions met", stubProvider{enabled: true, active: hosts}, 100, true},
		{"flag disabled", stubProvider{enabled: false, active: hosts}, 100, false},
		{"pool idle", stubProvider{enabled: true, idle: true, active: hosts}, 100, false},
		{"no active pools", stubProvider{enabled: true, active: nil}, 100, false},
		{"dial out of range", stubProvider{enabled: true, active: hosts}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Gate{Provider: tt.provider, Dial: dial.NewKeyHashDial(tt.pct)}
			assert.Equal(t, tt.want, g.ShouldShadow("userA"))
		})
	}
}

func TestShouldShadowFailsSafeOnProviderPanic(t *testing.T) {
	g := Gate{
		Provider: stubProvider{panics: true},
		Dial:     dial.NewKeyHashDial(100),
	}

	assert.NotPanics(t, func() {
		assert.False(t, g.ShouldShadow("userA"))
	})
}
