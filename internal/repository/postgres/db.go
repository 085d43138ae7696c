// Package postgres implements the persistence port on PostgreSQL through
// sqlx and the pgx stdlib driver.
package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/msomdec/notekeeper/internal/domain"
	"github.com/msomdec/notekeeper/internal/migrations"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// DB wraps a pooled Postgres connection.
type DB struct {
	X *sqlx.DB
}

var _ domain.Store = (*DB)(nil)

func Connect(ctx context.Context, dsn string) (*DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &DB{X: db}, nil
}

func (d *DB) Migrate(ctx context.Context) error {
	files, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	return migrations.Run(ctx, d.X.DB, files, migrations.Postgres)
}

func (d *DB) Ping(ctx context.Context) error {
	return d.X.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.X.Close()
}

func (d *DB) Users() domain.UserRepository {
	return NewUserRepo(d.X)
}

func (d *DB) Notes() domain.NoteRepository {
	return NewNoteRepo(d.X)
}
