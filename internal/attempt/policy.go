// Package attempt implements the per-login attempt policy and the buffers
// that collect an attempt one click or one image at a time.
package attempt

import (
	"fmt"

	"github.com/dmitrijs2005/graphauth/internal/common"
)

// MaxAttempts is how many failed attempts a login session allows.
const MaxAttempts = 3

// State is a state of the attempt policy.
//
//	Collecting -> Evaluating -> Granted
//	                         -> Retry(n) -> Collecting
//	                         -> Locked
type State int

const (
	StateCollecting State = iota
	StateEvaluating
	StateGranted
	StateRetry
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateEvaluating:
		return "evaluating"
	case StateGranted:
		return "granted"
	case StateRetry:
		return "retry"
	case StateLocked:
		return "locked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further attempt is accepted in s.
func (s State) Terminal() bool {
	return s == StateGranted || s == StateLocked
}

// Verdict is the outcome of one evaluated attempt.
type Verdict struct {
	// State is Granted, Retry or Locked.
	State State
	// FailedCount is the number of failures so far, this one included.
	FailedCount int
	// Remaining is how many attempts are left; zero once locked.
	Remaining int
}

// Session tracks failed attempts for one login flow. It is never
// persisted. A Session is not safe for concurrent use.
type Session struct {
	state       State
	failedCount int
	maxAttempts int
}

// NewSession starts a session in the Collecting state.
func NewSession() *Session {
	return &Session{state: StateCollecting, maxAttempts: MaxAttempts}
}

// State returns the current state. Between attempts it is Collecting,
// Granted or Locked.
func (s *Session) State() State {
	return s.state
}

// FailedCount returns the number of failed attempts so far.
func (s *Session) FailedCount() int {
	return s.failedCount
}

// MaxAttempts returns the attempt limit of the session.
func (s *Session) MaxAttempts() int {
	return s.maxAttempts
}

// Remaining returns how many attempts may still be made.
func (s *Session) Remaining() int {
	if s.state == StateLocked || s.state == StateGranted {
		return 0
	}
	return s.maxAttempts - s.failedCount
}

// Evaluate records the matcher result of one fully collected attempt.
// It returns common.ErrSessionLocked or common.ErrSessionClosed once the
// session has reached a terminal state.
func (s *Session) Evaluate(matched bool) (Verdict, error) {
	switch s.state {
	case StateLocked:
		return Verdict{State: StateLocked, FailedCount: s.failedCount}, common.ErrSessionLocked
	case StateGranted:
		return Verdict{State: StateGranted, FailedCount: s.failedCount}, common.ErrSessionClosed
	}

	s.state = StateEvaluating

	if matched {
		s.state = StateGranted
		return Verdict{State: StateGranted, FailedCount: s.failedCount}, nil
	}

	s.failedCount++
	if s.failedCount >= s.maxAttempts {
		s.state = StateLocked
		return Verdict{State: StateLocked, FailedCount: s.failedCount}, nil
	}

	s.state = StateCollecting
	return Verdict{State: StateRetry, FailedCount: s.failedCount, Remaining: s.maxAttempts - s.failedCount}, nil
}
