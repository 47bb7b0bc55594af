package reveal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSessionLifecycle(t *testing.T) {
	sched := &ManualScheduler{}
	s := NewSession(sched)
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.Begin())
	assert.Equal(t, StateDrawing, s.State())
	require.ErrorIs(t, s.Begin(), ErrRevealInProgress)

	require.NoError(t, s.StartReveal(Plan{Strip: []View{{Name: "x"}}}, time.Second))
	assert.Equal(t, StateRevealing, s.State())
	require.ErrorIs(t, s.Begin(), ErrRevealInProgress)
	_, ok := s.Current()
	assert.True(t, ok)

	sched.FireAll()
	assert.Equal(t, StateIdle, s.State())
	_, ok = s.Current()
	assert.False(t, ok)
	require.NoError(t, s.Begin())
}

func TestSessionAbort(t *testing.T) {
	s := NewSession(&ManualScheduler{})
	require.NoError(t, s.Begin())
	s.Abort()
	assert.Equal(t, StateIdle, s.State())
	require.ErrorIs(t, s.StartReveal(Plan{}, time.Second), ErrNotDrawing)
}

func TestSessionCancelStopsTimer(t *testing.T) {
	sched := &ManualScheduler{}
	s := NewSession(sched)
	require.NoError(t, s.Begin())
	require.NoError(t, s.StartReveal(Plan{}, time.Minute))
	require.Equal(t, 1, sched.Pending())

	assert.True(t, s.Cancel())
	assert.Equal(t, StateIdle, s.State())
	assert.Zero(t, sched.Pending())
	assert.False(t, s.Cancel())
}

func TestSessionStaleTimerIgnored(t *testing.T) {
	sched := &ManualScheduler{}
	s := NewSession(sched)

	require.NoError(t, s.Begin())
	require.NoError(t, s.StartReveal(Plan{}, time.Minute))
	stale := sched.pending[0]
	assert.True(t, s.Complete())

	require.NoError(t, s.Begin())
	require.NoError(t, s.StartReveal(Plan{}, time.Minute))

	// the first reveal's callback must not end the second reveal
	stale.f()
	assert.Equal(t, StateRevealing, s.State())
	s.Cancel()
}

func TestSessionRealSchedulerExpires(t *testing.T) {
	s := NewSession(nil)
	require.NoError(t, s.Begin())
	require.NoError(t, s.StartReveal(Plan{}, 10*time.Millisecond))
	assert.Eventually(t, func() bool { return s.State() == StateIdle }, time.Second, 5*time.Millisecond)
}

func TestSessionRealSchedulerCancel(t *testing.T) {
	s := NewSession(RealScheduler())
	require.NoError(t, s.Begin())
	require.NoError(t, s.StartReveal(Plan{}, time.Hour))
	assert.True(t, s.Cancel())
	assert.Equal(t, StateIdle, s.State())
}
