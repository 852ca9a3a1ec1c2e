package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/graphauth/internal/server/migrations"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends the row-per-user repository over a pgx
// connection pool and owns that pool.
type PostgresRepositoryManager struct {
	db    *sql.DB
	users users.Repository
}

// openDB is a seam for testing sql.Open.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// runMigrations is a seam for testing migrations.Up.
var runMigrations = migrations.Up

// NewPostgresRepositoryManager connects to dsn and migrates the schema.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(ctx, db, migrations.DialectPostgres); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &PostgresRepositoryManager{db: db, users: users.NewPostgresRepository(db)}, nil
}

// Conn exposes the pool, e.g. for health checks.
func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
