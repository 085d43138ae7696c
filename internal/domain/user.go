package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Phone is empty when not provided.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// UserProfile is the sanitized view of a User returned to callers.
type UserProfile struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Profile strips credentials from u.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthSession is the outcome of a successful login.
type AuthSession struct {
	User      UserProfile
	Token     string
	ExpiresAt time.Time
}

// UserRepository defines persistence operations for users.
// "Active" lookups never return soft-deleted rows; the Exists checks
// consider every row, since unique constraints do too.
type UserRepository interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetActiveByEmail(ctx context.Context, email string) (*User, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, user *User) error
	Count(ctx context.Context) (int, error)
}
