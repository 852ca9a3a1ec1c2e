// Package repomanager builds the user repository for the configured store
// backend and owns the connections behind it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/graphauth/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/users"
)

// Backend names a store backend.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendS3       Backend = "s3"
)

// ParseBackend validates a backend name from configuration.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendS3:
		return b, nil
	default:
		return "", fmt.Errorf("unknown store backend %q", s)
	}
}

// Options selects and configures a backend.
type Options struct {
	Backend     Backend
	DatabaseDSN string
	SQLitePath  string
	S3          blobs.S3Options
}

// RepositoryManager vends the user repository and releases whatever
// connection backs it.
type RepositoryManager interface {
	Users() users.Repository
	Close() error
}

// seams for tests
var (
	openSQLite  = blobs.OpenSQLite
	openS3Store = blobs.NewS3Store
)

// New opens the backend named in opts.
func New(ctx context.Context, opts Options) (RepositoryManager, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewBlobRepositoryManager(blobs.NewMemoryStore(), nil), nil

	case BackendSQLite:
		s, err := openSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		return NewBlobRepositoryManager(s, s.Close), nil

	case BackendS3:
		s, err := openS3Store(ctx, opts.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		return NewBlobRepositoryManager(s, nil), nil

	case BackendPostgres:
		return NewPostgresRepositoryManager(ctx, opts.DatabaseDSN)

	default:
		return nil, fmt.Errorf("unknown store backend %q", string(opts.Backend))
	}
}

// BlobRepositoryManager serves the collection repository over a blobs.Store.
type BlobRepositoryManager struct {
	users users.Repository
	close func() error
}

// NewBlobRepositoryManager wraps store. closeFn may be nil.
func NewBlobRepositoryManager(store blobs.Store, closeFn func() error) *BlobRepositoryManager {
	return &BlobRepositoryManager{users: users.NewCollectionRepository(store), close: closeFn}
}

func (m *BlobRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *BlobRepositoryManager) Close() error {
	if m.close == nil {
		return nil
	}
	return m.close()
}
