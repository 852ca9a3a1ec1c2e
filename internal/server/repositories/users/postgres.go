package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/dbx"
)

// PostgresRepository stores one row per user. The unique username_key
// column makes Create atomic across server processes.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *credential.UserRecord) (*credential.UserRecord, error) {
	cred, err := credential.MarshalCredential(user.Credential)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO users (id, username, username_key, auth_method, credential, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (username_key) DO NOTHING
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Key(), string(user.Method()), cred, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		// DO NOTHING returns no row when the key is taken.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, username string) (*credential.UserRecord, error) {
	query :=
		`SELECT id, username, auth_method, credential, created_at FROM users
		 WHERE username_key = $1
		 `

	var (
		user   credential.UserRecord
		method string
		raw    []byte
	)
	err := r.db.QueryRowContext(ctx, query, credential.UsernameKey(username)).
		Scan(&user.ID, &user.Username, &method, &raw, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Credential, err = credential.UnmarshalCredential(credential.Method(method), raw)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", user.Username, err)
	}

	return &user, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username_key = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, credential.UsernameKey(username)).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
