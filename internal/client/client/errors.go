package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("too many requests")
	ErrRejected     = errors.New("request rejected")
	ErrNotFound     = errors.New("not found")
	ErrLocked       = errors.New("account temporarily locked")
	ErrConflict     = errors.New("already exists")
)

// RemoteError carries the message the server chose to show the user. It
// unwraps to one of the sentinels above so callers can branch on the kind.
type RemoteError struct {
	Message string
	kind    error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.kind.Error()
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error { return e.kind }
