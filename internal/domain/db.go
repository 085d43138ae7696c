package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres) owns its own migration
// files, so the whole persistence backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Store is a database together with the repositories it backs.
type Store interface {
	Database
	Users() UserRepository
	Notes() NoteRepository
}
