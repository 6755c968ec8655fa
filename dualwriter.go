package mirrorkv

import (
	"errors"
	"os"

	"log/slog"

	"github.com/mirrorkv/mirrorkv.go/pkg/dial"
	"github.com/mirrorkv/mirrorkv.go/pkg/eligibility"
	"github.com/mirrorkv/mirrorkv.go/pkg/kv"
	"github.com/mirrorkv/mirrorkv.go/pkg/logger"
	"github.com/mirrorkv/mirrorkv.go/pkg/pool"
	"github.com/mirrorkv/mirrorkv.go/pkg/shadow"
)

// Config wires a DualWriter. Origin, Target and Provider are required;
// everything else has a default.
type Config struct {
	// Origin is the cluster being migrated away from. It only ever receives
	// best-effort shadow writes.
	Origin kv.Client

	// Target is the authoritative cluster. Every operation's caller-visible
	// result comes from here.
	Target kv.Client

	// Provider supplies the origin pool's state for the eligibility check.
	// It also owns the dual-write feature flag.
	Provider pool.StateProvider

	// Dial is the sampling policy. Defaults to a TimestampDial seeded with
	// Provider.DualWritePercentage.
	Dial dial.Dial

	// Executor runs shadow invocations. Share one across every DualWriter
	// in the process. When nil, the DualWriter builds and starts its own
	// and stops it on Close.
	Executor *shadow.Executor

	// Sink receives shadow failures. Defaults to shadow.NopSink. Only used
	// when Executor is nil; an injected Executor already carries its sink.
	Sink shadow.Sink

	Logger logger.Logger
}

// DualWriter decorates a target-cluster client with sampled, asynchronous,
// failure-isolated shadow writes against the origin cluster.
//
// Every command runs synchronously against the target and returns its result
// unchanged; nothing that happens on the origin side can reach the caller.
type DualWriter struct {
	origin kv.Client
	target kv.Client

	gate     eligibility.Gate
	executor *shadow.Executor
	logger   logger.Logger

	// ownsExecutor marks an executor built by New, stopped on Close.
	ownsExecutor bool
}

// New validates conf, fills in defaults, and returns a ready DualWriter.
func New(conf Config) (*DualWriter, error) {
	if conf.Origin == nil {
		return nil, errors.New("origin client is required")
	}
	if conf.Target == nil {
		return nil, errors.New("target client is required")
	}
	if conf.Provider == nil {
		return nil, errors.New("pool state provider is required")
	}

	d := conf.Dial
	if d == nil {
		d = dial.NewTimestampDial(conf.Provider.DualWritePercentage())
	}

	l := conf.Logger
	if l == nil {
		l = logger.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	dw := &DualWriter{
		origin: conf.Origin,
		target: conf.Target,
		gate:   eligibility.Gate{Provider: conf.Provider, Dial: d},
		logger: l,
	}

	if conf.Executor != nil {
		dw.executor = conf.Executor
	} else {
		sink := conf.Sink
		if sink == nil {
			sink = shadow.NopSink{}
		}
		dw.executor = shadow.NewExecutor(shadow.ExecutorConfig{Sink: sink})
		dw.executor.Start()
		dw.ownsExecutor = true
	}

	return dw, nil
}

// Dial returns the sampling policy for operator retuning.
func (dw *DualWriter) Dial() dial.Dial {
	return dw.gate.Dial
}

// Close stops the executor if this DualWriter built it. Closing a DualWriter
// constructed with a shared executor is a no-op; the embedder owns that
// executor's lifecycle.
func (dw *DualWriter) Close() {
	if dw.ownsExecutor {
		dw.logger.Debug("stopping shadow executor")
		dw.executor.Stop()
	}
}

// shadow submits at most one task for this logical invocation, and only when
// the gate passes.
func (dw *DualWriter) shadow(key string, run func() error) {
	if !dw.gate.ShouldShadow(key) {
		return
	}
	dw.executor.Submit(shadow.Task{Key: key, Run: run})
}

// execute is the single dispatch path every command funnels through: shadow
// first (non-blocking, optional), then the authoritative target call, whose
// result or error is returned to the caller unchanged.
func execute[T any](dw *DualWriter, key string, origin, target func() (*kv.Result[T], error)) (T, error) {
	dw.shadow(key, func() error {
		_, err := origin()
		return err
	})

	res, err := target()
	if err != nil || res == nil {
		var zero T
		return zero, err
	}
	return res.Value, nil
}
