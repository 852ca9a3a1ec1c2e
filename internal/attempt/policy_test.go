package attempt

import (
	"testing"

	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateCollecting, s.State())
	assert.Equal(t, 0, s.FailedCount())
	assert.Equal(t, 3, s.MaxAttempts())
	assert.Equal(t, 3, s.Remaining())
}

func TestEvaluate_GrantedOnFirstTry(t *testing.T) {
	s := NewSession()

	v, err := s.Evaluate(true)
	require.NoError(t, err)
	assert.Equal(t, Verdict{State: StateGranted}, v)
	assert.Equal(t, StateGranted, s.State())
	assert.True(t, s.State().Terminal())
}

func TestEvaluate_RetryCountsDown(t *testing.T) {
	s := NewSession()

	v, err := s.Evaluate(false)
	require.NoError(t, err)
	assert.Equal(t, Verdict{State: StateRetry, FailedCount: 1, Remaining: 2}, v)
	assert.Equal(t, StateCollecting, s.State())

	v, err = s.Evaluate(false)
	require.NoError(t, err)
	assert.Equal(t, Verdict{State: StateRetry, FailedCount: 2, Remaining: 1}, v)
	assert.Equal(t, 1, s.Remaining())
}

func TestEvaluate_LocksAfterMaxFailures(t *testing.T) {
	s := NewSession()

	for i := 0; i < MaxAttempts-1; i++ {
		_, err := s.Evaluate(false)
		require.NoError(t, err)
	}

	v, err := s.Evaluate(false)
	require.NoError(t, err)
	assert.Equal(t, Verdict{State: StateLocked, FailedCount: 3}, v)
	assert.Equal(t, StateLocked, s.State())
	assert.Equal(t, 0, s.Remaining())

	// A correct attempt after lockout is rejected outright.
	v, err = s.Evaluate(true)
	assert.ErrorIs(t, err, common.ErrSessionLocked)
	assert.Equal(t, StateLocked, v.State)
	assert.Equal(t, 3, s.FailedCount())
}

func TestEvaluate_GrantedAfterKFailures(t *testing.T) {
	for k := 0; k < MaxAttempts; k++ {
		s := NewSession()
		for i := 0; i < k; i++ {
			_, err := s.Evaluate(false)
			require.NoError(t, err)
		}

		v, err := s.Evaluate(true)
		require.NoError(t, err, "k=%d", k)
		assert.Equal(t, StateGranted, v.State, "k=%d", k)
		assert.Equal(t, k, v.FailedCount)
	}
}

func TestEvaluate_ClosedAfterGrant(t *testing.T) {
	s := NewSession()
	_, err := s.Evaluate(true)
	require.NoError(t, err)

	_, err = s.Evaluate(false)
	assert.ErrorIs(t, err, common.ErrSessionClosed)
	assert.Equal(t, 0, s.FailedCount())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "collecting", StateCollecting.String())
	assert.Equal(t, "evaluating", StateEvaluating.String())
	assert.Equal(t, "granted", StateGranted.String())
	assert.Equal(t, "retry", StateRetry.String())
	assert.Equal(t, "locked", StateLocked.String())
	assert.Equal(t, "state(42)", State(42).String())
}
