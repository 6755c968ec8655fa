package shadow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Sink receives shadow-path failures. Implementations must never panic and
// must return quickly; RecordFailure sits on the shadow dispatch path.
type Sink interface {
	RecordFailure(label, message string)
}

// NopSink discards every failure.
type NopSink struct{}

func (NopSink) RecordFailure(string, string) {}

// CounterSink counts failures in a prometheus counter labeled by failure
// label. The message is dropped to keep series cardinality bounded.
type CounterSink struct {
	failures *prometheus.CounterVec
}

// NewCounterSink registers the failure counter with reg and returns the sink.
// Pass prometheus.DefaultRegisterer unless the process owns its own registry.
func NewCounterSink(reg prometheus.Registerer) *CounterSink {
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mirrorkv",
		Subsystem: "shadow",
		Name:      "failures_total",
		Help:      "Shadow submission and execution failures, by failure label.",
	}, []string{"label"})
	reg.MustRegister(failures)

	return &CounterSink{failures: failures}
}

func (s *CounterSink) RecordFailure(label, _ string) {
	s.failures.WithLabelValues(label).Inc()
}

// LogSink emits one warning event per failure.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) RecordFailure(label, message string) {
	s.Logger.Warn().Str("label", label).Msg(message)
}

// FanoutSink forwards each failure to every wrapped sink, typically a
// CounterSink plus a LogSink.
type FanoutSink []Sink

func (s FanoutSink) RecordFailure(label, message string) {
	for _, sink := range s {
		sink.RecordFailure(label, message)
	}
}
