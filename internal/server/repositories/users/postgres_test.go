package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*username_key,\s*auth_method,\s*credential,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*ON\s+CONFLICT\s+\(username_key\)\s+DO\s+NOTHING\s+RETURNING\s+id\s*$`
	selectQuery = `(?s)^SELECT\s+id,\s*username,\s*auth_method,\s*credential,\s*created_at\s+FROM\s+users\s+WHERE\s+username_key\s*=\s*\$1\s*$`
	existsQuery = `(?s)^SELECT\s+EXISTS\s+\(SELECT\s+1\s+FROM\s+users\s+WHERE\s+username_key\s*=\s*\$1\)$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func sequenceUser() *credential.UserRecord {
	return &credential.UserRecord{
		ID:         "6f1c1a8e-3e0b-4b43-9a5e-1b2c3d4e5f60",
		Username:   "Bob",
		Credential: credential.SequenceCredential{Images: credential.ImageSelection{"img-3", "img-7", "img-1", "img-9"}},
		CreatedAt:  time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sequenceUser()
	mock.ExpectQuery(insertQuery).
		WithArgs(u.ID, "Bob", "bob", "image-sequence", []byte(`["img-3","img-7","img-1","img-9"]`), u.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(u.ID))

	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Create(context.Background(), sequenceUser())
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sequenceUser())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreate_NoCredential(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.Create(context.Background(), &credential.UserRecord{Username: "bob"})
	assert.ErrorIs(t, err, common.ErrInvalidUserData)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "username", "auth_method", "credential", "created_at"}).
		AddRow("u-1", "Alice", "cued-click-points",
			[]byte(`[{"x":10,"y":10,"imageIndex":0},{"x":20,"y":20,"imageIndex":0},{"x":30,"y":30,"imageIndex":0},{"x":40,"y":40,"imageIndex":0},{"x":50,"y":50,"imageIndex":0}]`),
			created)
	mock.ExpectQuery(selectQuery).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetUserByLogin(context.Background(), " ALICE ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, credential.MethodClickPoints, got.Method())
	cc, ok := got.Credential.(credential.ClickCredential)
	require.True(t, ok)
	assert.Len(t, cc.Points, 5)
	assert.Equal(t, created, got.CreatedAt)
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserByLogin_CorruptCredential(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "auth_method", "credential", "created_at"}).
		AddRow("u-1", "alice", "image-sequence", []byte(`null`), time.Now())
	mock.ExpectQuery(selectQuery).WithArgs("alice").WillReturnRows(rows)

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	assert.ErrorIs(t, err, common.ErrInvalidUserData)
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("alice").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(existsQuery).WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(existsQuery).WithArgs("eve").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(existsQuery).WithArgs("err").
		WillReturnError(errors.New("db err"))

	ok, err := repo.Exists(context.Background(), "Bob")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), "eve")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Exists(context.Background(), "err")
	assert.ErrorContains(t, err, "db error: db err")
}
