package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestObservability(t *testing.T) (*Observability, *prometheus.Registry, *tracetest.SpanRecorder) {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec := tracetest.NewSpanRecorder()

	o, err := New("test-service", WithRegisterer(reg), WithSpanProcessor(rec), WithoutGlobal())
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Shutdown(context.Background()) })
	return o, reg, rec
}

func TestStartSpan_RecordsSpan(t *testing.T) {
	o, _, rec := newTestObservability(t)

	ctx, span := o.StartSpan(context.Background(), "rank-crops", attribute.Int("shortlist", 4))
	_, child := o.StartSpan(ctx, "risk")
	child.End()
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "risk", ended[0].Name())
	assert.Equal(t, "rank-crops", ended[1].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
	assert.Contains(t, ended[1].Attributes(), attribute.Int("shortlist", 4))
}

func TestRecord_ExportsToRegistry(t *testing.T) {
	o, reg, _ := newTestObservability(t)
	ctx := context.Background()

	o.RecordJobProcessed(ctx, "rank-crops", "completed")
	o.RecordJobDuration(ctx, "rank-crops", 15*time.Millisecond, "completed")
	o.RecordStage(ctx, "ranking", 250*time.Microsecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	for _, want := range []string{
		"jobs_processed_total",
		"jobs_duration_milliseconds",
		"pipeline_stage_duration_milliseconds",
	} {
		assert.Contains(t, names, want)
	}
	for _, n := range names {
		assert.NotContains(t, n, ".", "metric %s is not a classic prometheus name", n)
	}
}

func TestNilObservability(t *testing.T) {
	var o *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		o.RecordJobProcessed(ctx, "rank-crops", "completed")
		o.RecordStage(ctx, "ranking", time.Millisecond)
		_, span := o.StartSpan(ctx, "noop")
		span.End()
	})
	assert.NoError(t, o.Shutdown(ctx))
}
