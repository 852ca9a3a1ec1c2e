package repomanager

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	for _, name := range []string{"memory", "sqlite", "postgres", "s3"} {
		b, err := ParseBackend(name)
		require.NoError(t, err)
		assert.Equal(t, Backend(name), b)
	}

	_, err := ParseBackend("redis")
	assert.ErrorContains(t, err, `unknown store backend "redis"`)
}

func TestNew_Memory(t *testing.T) {
	m, err := New(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &users.CollectionRepository{}, m.Users())
	assert.NoError(t, m.Close())
}

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()
	m, err := New(ctx, Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "g.db")})
	require.NoError(t, err)

	_, err = m.Users().Create(ctx, &credential.UserRecord{
		ID:         "u-1",
		Username:   "bob",
		Credential: credential.SequenceCredential{Images: credential.ImageSelection{"img-1", "img-2", "img-3", "img-4"}},
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, m.Close())
}

func TestNew_SQLiteError(t *testing.T) {
	orig := openSQLite
	t.Cleanup(func() { openSQLite = orig })
	openSQLite = func(ctx context.Context, path string) (*blobs.SQLiteStore, error) {
		return nil, errors.New("read-only fs")
	}

	_, err := New(context.Background(), Options{Backend: BackendSQLite, SQLitePath: "x.db"})
	assert.ErrorContains(t, err, "db init error: read-only fs")
}

func TestNew_S3(t *testing.T) {
	orig := openS3Store
	t.Cleanup(func() { openS3Store = orig })

	var got blobs.S3Options
	openS3Store = func(ctx context.Context, opts blobs.S3Options) (*blobs.S3Store, error) {
		got = opts
		return &blobs.S3Store{}, nil
	}

	m, err := New(context.Background(), Options{Backend: BackendS3, S3: blobs.S3Options{Bucket: "graphauth"}})
	require.NoError(t, err)
	assert.Equal(t, "graphauth", got.Bucket)
	assert.NoError(t, m.Close())

	openS3Store = func(ctx context.Context, opts blobs.S3Options) (*blobs.S3Store, error) {
		return nil, errors.New("no creds")
	}
	_, err = New(context.Background(), Options{Backend: BackendS3})
	assert.ErrorContains(t, err, "s3 init error: no creds")
}

func TestNew_Unknown(t *testing.T) {
	_, err := New(context.Background(), Options{Backend: "redis"})
	assert.Error(t, err)
}

func TestBlobRepositoryManager_Close(t *testing.T) {
	called := false
	m := NewBlobRepositoryManager(blobs.NewMemoryStore(), func() error { called = true; return nil })
	require.NoError(t, m.Close())
	assert.True(t, called)
}
