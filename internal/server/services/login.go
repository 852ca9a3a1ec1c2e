package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/graphauth/internal/attempt"
	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/imagepool"
	"github.com/dmitrijs2005/graphauth/internal/matcher"
	"github.com/dmitrijs2005/graphauth/internal/shuffle"
)

// Grant is handed out once a login succeeds.
type Grant struct {
	Username string
	Method   credential.Method
	Token    string
}

// Result is the outcome of one submitted attempt. Outcome is
// attempt.StateGranted, attempt.StateRetry or attempt.StateLocked.
type Result struct {
	Outcome   attempt.State
	Remaining int
	Message   string
	Grant     *Grant
}

// Login is one login flow for one user. It is safe for concurrent use;
// concurrent submits are serialized.
type Login struct {
	svc  *AuthService
	user *credential.UserRecord

	mu        sync.Mutex
	session   *attempt.Session
	onLockout []func()
	released  bool
}

// Username is the username as registered.
func (l *Login) Username() string {
	return l.user.Username
}

// Method is the authentication method of the user.
func (l *Login) Method() credential.Method {
	return l.user.Method()
}

// Grid returns the image pool freshly shuffled. Every call reshuffles.
func (l *Login) Grid() []imagepool.Image {
	return shuffle.Shuffle(l.svc.shuffler, l.svc.pool.Images())
}

// BackgroundImage is the reference image for click-point users.
func (l *Login) BackgroundImage() string {
	return imagepool.BackgroundImage
}

// State returns the attempt policy state.
func (l *Login) State() attempt.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.State()
}

// Remaining returns how many attempts are left.
func (l *Login) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Remaining()
}

// OnLockout registers fn to run once the lockout delay after this login
// locks. If that delay has already elapsed fn runs immediately.
func (l *Login) OnLockout(fn func()) {
	l.mu.Lock()
	if !l.released {
		l.onLockout = append(l.onLockout, fn)
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()
	fn()
}

// Submit evaluates a fully collected attempt. Attempts of the wrong size
// or of the other method are rejected with an error and not counted.
// A wrong attempt is not an error: it comes back as a Retry or Locked
// Result.
func (l *Login) Submit(ctx context.Context, cred credential.Credential) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.session.State() {
	case attempt.StateLocked:
		return nil, common.ErrSessionLocked
	case attempt.StateGranted:
		return nil, common.ErrSessionClosed
	}

	if cred == nil || cred.Method() != l.user.Method() {
		return nil, common.ErrMethodMismatch
	}
	// Pool membership is not checked: an unknown image is simply wrong.
	if err := credential.Validate(cred, nil); err != nil {
		return nil, err
	}

	log := l.svc.logger.With("username", l.user.Username, "method", l.user.Method())

	// The token is signed before the verdict is recorded so a signing
	// failure leaves the session open for another attempt.
	matched := matcher.Match(cred, l.user.Credential)
	var (
		token string
		err   error
	)
	if matched {
		token, err = generateToken(l.user.Username, l.user.Method(), l.svc.jwtSecret, l.svc.tokenValidity)
		if err != nil {
			log.Error(ctx, "token generation failed", "error", err)
			return nil, common.ErrorInternal
		}
	}

	verdict, err := l.session.Evaluate(matched)
	if err != nil {
		return nil, err
	}

	switch verdict.State {
	case attempt.StateGranted:
		log.Info(ctx, "login granted", "failed_attempts", verdict.FailedCount)
		return &Result{
			Outcome: attempt.StateGranted,
			Grant:   &Grant{Username: l.user.Username, Method: l.user.Method(), Token: token},
		}, nil

	case attempt.StateRetry:
		log.Info(ctx, "authentication failed", "remaining", verdict.Remaining)
		return &Result{
			Outcome:   attempt.StateRetry,
			Remaining: verdict.Remaining,
			Message: fmt.Sprintf("Authentication failed. %s does not match. Attempts remaining: %d",
				l.user.Method().DisplayName(), verdict.Remaining),
		}, nil

	default:
		log.Warn(ctx, "login locked", "failed_attempts", verdict.FailedCount)
		afterFunc(l.svc.lockoutDelay, l.release)
		return &Result{
			Outcome: attempt.StateLocked,
			Message: fmt.Sprintf("Authentication failed. Maximum attempts (%d) reached. Please try again later.",
				l.session.MaxAttempts()),
		}, nil
	}
}

// release fires the lockout handlers.
func (l *Login) release() {
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return
	}
	l.released = true
	handlers := l.onLockout
	l.onLockout = nil
	l.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
