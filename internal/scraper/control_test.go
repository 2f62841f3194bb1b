package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestControlStopIsOneWay(t *testing.T) {
	ctrl := NewControl()
	require.False(t, ctrl.Stopped())
	ctrl.Stop()
	require.True(t, ctrl.Stopped())
	ctrl.Stop() // idempotent
	require.True(t, ctrl.Stopped())

	select {
	case <-ctrl.Done():
	default:
		t.Fatal("Done channel should be closed after Stop")
	}
}

func TestControlPauseToggle(t *testing.T) {
	ctrl := NewControl()
	require.False(t, ctrl.Paused())
	ctrl.Pause()
	require.True(t, ctrl.Paused())
	ctrl.Resume()
	require.False(t, ctrl.Paused())
}

func TestWaitWhilePausedReturnsAfterResume(t *testing.T) {
	ctrl := NewControl()
	ctrl.Pause()

	go func() {
		time.Sleep(300 * time.Millisecond)
		ctrl.Resume()
	}()

	start := time.Now()
	require.True(t, ctrl.WaitWhilePaused(context.Background()))
	require.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond, "should block while paused")
}

func TestWaitWhilePausedObservesStop(t *testing.T) {
	ctrl := NewControl()
	ctrl.Pause()

	go func() {
		time.Sleep(100 * time.Millisecond)
		ctrl.Stop()
	}()

	start := time.Now()
	require.False(t, ctrl.WaitWhilePaused(context.Background()), "a stop during the pause must break the wait")
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestWaitWhilePausedHonorsContext(t *testing.T) {
	ctrl := NewControl()
	ctrl.Pause()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.False(t, ctrl.WaitWhilePaused(ctx))
}

func TestWaitWhilePausedPassesThroughWhenNotPaused(t *testing.T) {
	ctrl := NewControl()
	start := time.Now()
	require.True(t, ctrl.WaitWhilePaused(context.Background()))
	require.Less(t, time.Since(start), 50*time.Millisecond)
}
