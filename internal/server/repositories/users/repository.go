// Package users is the credential store adapter: it looks up and registers
// user records keyed by lower-cased username.
package users

import (
	"context"

	"github.com/dmitrijs2005/graphauth/internal/credential"
)

type Repository interface {
	// GetUserByLogin returns the record whose username matches
	// case-insensitively, or common.ErrorNotFound.
	GetUserByLogin(ctx context.Context, username string) (*credential.UserRecord, error)
	Exists(ctx context.Context, username string) (bool, error)
	// Create inserts user unless its key is taken, in which case it
	// returns common.ErrorAlreadyExists. The check and the insert are a
	// single atomic step.
	Create(ctx context.Context, user *credential.UserRecord) (*credential.UserRecord, error)
}
