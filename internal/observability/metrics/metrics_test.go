package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg, "frolf")
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "JoinRound", "RoundService")
	m.RecordOperationAttempt(ctx, "JoinRound", "RoundService")
	m.RecordOperationSuccess(ctx, "JoinRound", "RoundService")
	m.RecordOperationFailure(ctx, "JoinRound", "RoundService")
	m.RecordOperationDuration(ctx, "JoinRound", "RoundService", 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("JoinRound", "RoundService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.successes.WithLabelValues("JoinRound", "RoundService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("JoinRound", "RoundService")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "frolf_operation_duration_seconds")
}

func TestNoop(t *testing.T) {
	m := NewNoop()
	assert.NotPanics(t, func() {
		m.RecordOperationAttempt(context.Background(), "op", "svc")
		m.RecordOperationDuration(context.Background(), "op", "svc", time.Second)
	})
}
