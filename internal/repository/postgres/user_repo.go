package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/msomdec/notekeeper/internal/domain"
)

const uniqueViolationCode = "23505"

type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

type userRow struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Phone        sql.NullString `db:"phone"`
	PasswordHash string         `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
	DeletedAt    sql.NullTime   `db:"deleted_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone.String,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    timePtr(r.UpdatedAt),
		DeletedAt:    timePtr(r.DeletedAt),
	}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	const q = `
		INSERT INTO users (id, name, email, phone, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	phone := sql.NullString{String: u.Phone, Valid: u.Phone != ""}
	if _, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, phone, u.PasswordHash, u.CreatedAt.UTC()); err != nil {
		if mapped, ok := uniqueViolation(err); ok {
			return mapped
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *UserRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const q = `
		SELECT id, name, email, phone, password_hash, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.get(ctx, "user get by id", q, id)
}

func (r *UserRepo) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
		SELECT id, name, email, phone, password_hash, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`
	return r.get(ctx, "user get by email", q, email)
}

func (r *UserRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE name = $1)`, name)
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1)`, phone)
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`); err != nil {
		return 0, fmt.Errorf("user count: %w", err)
	}
	return n, nil
}

func (r *UserRepo) get(ctx context.Context, op, q string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), nil
}

func (r *UserRepo) exists(ctx context.Context, q string, arg any) (bool, error) {
	var found bool
	if err := r.db.GetContext(ctx, &found, q, arg); err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return found, nil
}

func uniqueViolation(err error) (error, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil, false
	}
	switch pgErr.ConstraintName {
	case "idx_user_email":
		return domain.ErrDuplicateEmail, true
	case "idx_user_name":
		return domain.ErrDuplicateName, true
	case "idx_user_phone":
		return domain.ErrDuplicatePhone, true
	default:
		return nil, false
	}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
