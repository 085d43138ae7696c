package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/notekeeper/internal/domain"
)

// noteRepo implements domain.NoteRepository using SQLite.
type noteRepo struct {
	db *sql.DB
}

// NewNoteRepository creates a new SQLite-backed note repository.
func NewNoteRepository(db *DB) domain.NoteRepository {
	return &noteRepo{db: db.SqlDB}
}

const noteColumns = `id, title, content, user_id, created_at, updated_at, deleted_at`

var noteOrderClauses = map[domain.NoteOrder]string{
	domain.NoteOrderNewest:    " ORDER BY created_at DESC",
	domain.NoteOrderOldest:    " ORDER BY created_at ASC",
	domain.NoteOrderTitleAsc:  " ORDER BY unicode_lower(title) ASC, title ASC",
	domain.NoteOrderTitleDesc: " ORDER BY unicode_lower(title) DESC, title DESC",
}

func orderClause(order domain.NoteOrder) string {
	if clause, ok := noteOrderClauses[order]; ok {
		return clause
	}
	return noteOrderClauses[domain.NoteOrderNewest]
}

func (r *noteRepo) Create(ctx context.Context, note *domain.Note) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, title, content, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, nullUUID(note.UserID), note.CreatedAt.UTC(), nullTime(note.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *noteRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND deleted_at IS NULL`, id)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

func (r *noteRepo) ListActive(ctx context.Context, order domain.NoteOrder) ([]domain.Note, error) {
	return r.query(ctx, `SELECT `+noteColumns+` FROM notes WHERE deleted_at IS NULL`+orderClause(order))
}

func (r *noteRepo) QueryActive(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE deleted_at IS NULL`
	var args []any
	if filter.Search != "" {
		query += ` AND (unicode_lower(title) LIKE ? ESCAPE '\' OR unicode_lower(content) LIKE ? ESCAPE '\')`
		pattern := containsPattern(filter.Search)
		args = append(args, pattern, pattern)
	}
	query += orderClause(domain.ParseNoteOrder(filter.SortBy))
	return r.query(ctx, query, args...)
}

func (r *noteRepo) Update(ctx context.Context, note *domain.Note) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		note.Title, note.Content, nullTime(note.UpdatedAt), note.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *noteRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, at.UTC(), id)
	if err != nil {
		return 0, fmt.Errorf("soft delete note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *noteRepo) query(ctx context.Context, query string, args ...any) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*domain.Note, error) {
	var (
		n         domain.Note
		userID    uuid.NullUUID
		updatedAt sql.NullTime
		deletedAt sql.NullTime
	)
	if err := s.Scan(&n.ID, &n.Title, &n.Content, &userID, &n.CreatedAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		id := userID.UUID
		n.UserID = &id
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = timePtr(updatedAt)
	n.DeletedAt = timePtr(deletedAt)
	return &n, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
