package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestEstimatorBeforeFirstCompletion(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)}
	est := NewEstimator(clock)
	est.Start(10)

	clock.advance(3 * time.Second)
	snap := est.Snapshot()
	require.Equal(t, 0, snap.Done)
	require.Equal(t, 10, snap.Total)
	require.Equal(t, 3*time.Second, snap.Elapsed)
	require.False(t, snap.Known, "no estimate until something completes")
}

func TestEstimatorAveragePace(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)}
	est := NewEstimator(clock)
	est.Start(10)

	// Four completions in eight seconds: two seconds per URL, six to go.
	clock.advance(8 * time.Second)
	snap := est.Observe(4)
	require.True(t, snap.Known)
	require.Equal(t, 4, snap.Done)
	require.Equal(t, 8*time.Second, snap.Elapsed)
	require.Equal(t, 12*time.Second, snap.Remaining)
	require.Equal(t, clock.now.Add(12*time.Second), snap.Finish)
}

func TestEstimatorComplete(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)}
	est := NewEstimator(clock)
	est.Start(3)

	clock.advance(9 * time.Second)
	snap := est.Observe(3)
	require.True(t, snap.Known)
	require.Equal(t, time.Duration(0), snap.Remaining)
	require.Equal(t, clock.now, snap.Finish)
}

func TestEstimatorStartResets(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)}
	est := NewEstimator(clock)
	est.Start(5)
	clock.advance(10 * time.Second)
	est.Observe(5)

	est.Start(2)
	snap := est.Snapshot()
	require.Equal(t, 0, snap.Done)
	require.Equal(t, 2, snap.Total)
	require.Equal(t, time.Duration(0), snap.Elapsed)
	require.False(t, snap.Known)
}
