package shadow

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCounterSinkCountsByLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewCounterSink(reg)

	sink.RecordFailure(LabelSubmit, "queue saturated")
	sink.RecordFailure(LabelSubmit, "origin down")
	sink.RecordFailure("other_label", "whatever")

	assert.Equal(t, float64(2), testutil.ToFloat64(sink.failures.WithLabelValues(LabelSubmit)))
	assert.Equal(t, float64(1), testutil.ToFloat64(sink.failures.WithLabelValues("other_label")))
}

func TestLogSinkEmitsWarning(t *testing.T) {
	buffer := bytes.NewBuffer([]byte{})
	sink := LogSink{Logger: zerolog.New(buffer)}

	sink.RecordFailure(LabelSubmit, "origin connection refused")

	out := buffer.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, LabelSubmit)
	assert.Contains(t, out, "origin connection refused")
}

func TestFanoutSinkForwardsToAll(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	sink := FanoutSink{first, second}

	sink.RecordFailure(LabelSubmit, "boom")

	assert.Len(t, first.Events(), 1)
	assert.Len(t, second.Events(), 1)
}

func TestNopSinkIsSilent(t *testing.T) {
	assert.NotPanics(t, func() {
		NopSink{}.RecordFailure(LabelSubmit, "dropped")
	})
}
