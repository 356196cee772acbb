package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateGate_PacesCalls(t *testing.T) {
	gate := New(10) // 100ms between calls
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, gate.Wait(ctx))
	require.NoError(t, gate.Wait(ctx))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
}

func TestRateGate_RespectsCancellation(t *testing.T) {
	gate := New(0.001) // effectively never fires again soon
	require.NoError(t, gate.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := gate.Wait(ctx)
	assert.Error(t, err)
}

func TestNew_NonPositiveRateDefaultsToOne(t *testing.T) {
	gate := New(0)
	assert.Equal(t, rate.Limit(1), gate.limiter.Limit())
}
