package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/imagepool"
)

// Client is the API the CLI needs from the server.
type Client interface {
	CheckUsername(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, username string, c credential.Credential) error
	BeginLogin(ctx context.Context, username string) (*Challenge, error)
	Grid(ctx context.Context, sessionID string) ([]imagepool.Image, error)
	SubmitAttempt(ctx context.Context, sessionID string, c credential.Credential) (*Result, error)
	WhoAmI(ctx context.Context) (*Identity, error)
	Ping(ctx context.Context) error
	Logout()
	Close() error
}

// Challenge is an open login session as announced by the server.
type Challenge struct {
	SessionID       string
	Username        string
	Method          credential.Method
	Remaining       int
	BackgroundImage string
	Grid            []imagepool.Image
}

// Outcome of a submitted attempt.
type Outcome string

const (
	OutcomeGranted Outcome = "granted"
	OutcomeRetry   Outcome = "retry"
	OutcomeLocked  Outcome = "locked"
)

// Result is the server's verdict on one attempt.
type Result struct {
	Outcome   Outcome
	Remaining int
	Message   string
	Username  string
	Method    credential.Method
}

// Identity is the holder of the current access token.
type Identity struct {
	Username  string
	Method    credential.Method
	ExpiresAt time.Time
}
