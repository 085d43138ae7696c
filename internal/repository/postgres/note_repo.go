package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/msomdec/notekeeper/internal/domain"
)

type NoteRepo struct {
	db *sqlx.DB
}

func NewNoteRepo(db *sqlx.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

type noteRow struct {
	ID        uuid.UUID     `db:"id"`
	Title     string        `db:"title"`
	Content   string        `db:"content"`
	UserID    uuid.NullUUID `db:"user_id"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt sql.NullTime  `db:"updated_at"`
	DeletedAt sql.NullTime  `db:"deleted_at"`
}

func (r noteRow) toDomain() domain.Note {
	n := domain.Note{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: timePtr(r.UpdatedAt),
		DeletedAt: timePtr(r.DeletedAt),
	}
	if r.UserID.Valid {
		id := r.UserID.UUID
		n.UserID = &id
	}
	return n
}

const selectActiveNotes = `
	SELECT id, title, content, user_id, created_at, updated_at, deleted_at
	FROM notes
	WHERE deleted_at IS NULL
`

var orderBy = map[domain.NoteOrder]string{
	domain.NoteOrderNewest:    " ORDER BY created_at DESC",
	domain.NoteOrderOldest:    " ORDER BY created_at ASC",
	domain.NoteOrderTitleAsc:  " ORDER BY LOWER(title) ASC, title ASC",
	domain.NoteOrderTitleDesc: " ORDER BY LOWER(title) DESC, title DESC",
}

func orderClause(o domain.NoteOrder) string {
	if clause, ok := orderBy[o]; ok {
		return clause
	}
	return orderBy[domain.NoteOrderNewest]
}

func (r *NoteRepo) Create(ctx context.Context, n *domain.Note) error {
	const q = `
		INSERT INTO notes (id, title, content, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var updatedAt sql.NullTime
	if n.UpdatedAt != nil {
		updatedAt = sql.NullTime{Time: n.UpdatedAt.UTC(), Valid: true}
	}
	var userID uuid.NullUUID
	if n.UserID != nil {
		userID = uuid.NullUUID{UUID: *n.UserID, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, q, n.ID, n.Title, n.Content, userID, n.CreatedAt.UTC(), updatedAt); err != nil {
		return fmt.Errorf("note create: %w", err)
	}
	return nil
}

func (r *NoteRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	var row noteRow
	if err := r.db.GetContext(ctx, &row, selectActiveNotes+` AND id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("note get by id: %w", err)
	}
	n := row.toDomain()
	return &n, nil
}

func (r *NoteRepo) ListActive(ctx context.Context, order domain.NoteOrder) ([]domain.Note, error) {
	return r.selectNotes(ctx, selectActiveNotes+orderClause(order))
}

func (r *NoteRepo) QueryActive(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	q := selectActiveNotes
	var args []any
	if filter.Search != "" {
		q += ` AND (LOWER(title) LIKE $1 ESCAPE '\' OR LOWER(content) LIKE $1 ESCAPE '\')`
		args = append(args, containsPattern(filter.Search))
	}
	q += orderClause(domain.ParseNoteOrder(filter.SortBy))
	return r.selectNotes(ctx, q, args...)
}

func (r *NoteRepo) Update(ctx context.Context, n *domain.Note) (int64, error) {
	const q = `
		UPDATE notes
		SET title = $2, content = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`
	var updatedAt sql.NullTime
	if n.UpdatedAt != nil {
		updatedAt = sql.NullTime{Time: n.UpdatedAt.UTC(), Valid: true}
	}
	res, err := r.db.ExecContext(ctx, q, n.ID, n.Title, n.Content, updatedAt)
	if err != nil {
		return 0, fmt.Errorf("note update: %w", err)
	}
	return res.RowsAffected()
}

func (r *NoteRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	const q = `UPDATE notes SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id, at.UTC())
	if err != nil {
		return 0, fmt.Errorf("note soft delete: %w", err)
	}
	return res.RowsAffected()
}

func (r *NoteRepo) selectNotes(ctx context.Context, q string, args ...any) ([]domain.Note, error) {
	var rows []noteRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("note list: %w", err)
	}
	notes := make([]domain.Note, len(rows))
	for i, row := range rows {
		notes[i] = row.toDomain()
	}
	return notes, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
