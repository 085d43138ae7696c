package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteTitleMaxLength is the maximum title length in characters.
const NoteTitleMaxLength = 200

// Note is a user-authored note. UserID is nil for orphan notes.
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	UserID    *uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

func (n *Note) IsDeleted() bool {
	return n.DeletedAt != nil
}

// OwnedBy reports whether the note may be changed by actor. Orphan notes
// may be changed by anyone.
func (n *Note) OwnedBy(actor *uuid.UUID) bool {
	if n.UserID == nil {
		return true
	}
	return actor != nil && *actor == *n.UserID
}

type NoteOrder string

const (
	NoteOrderNewest    NoteOrder = "newest"
	NoteOrderOldest    NoteOrder = "oldest"
	NoteOrderTitleAsc  NoteOrder = "title_asc"
	NoteOrderTitleDesc NoteOrder = "title_desc"
)

// ParseNoteOrder normalizes a sort key. Empty or unrecognized keys fall
// back to newest first.
func ParseNoteOrder(s string) NoteOrder {
	switch o := NoteOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case NoteOrderOldest, NoteOrderTitleAsc, NoteOrderTitleDesc:
		return o
	default:
		return NoteOrderNewest
	}
}

// NoteFilter narrows a note listing.
type NoteFilter struct {
	Search string
	SortBy string
}

// IsZero reports whether the filter asks for nothing beyond the default listing.
func (f NoteFilter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && strings.TrimSpace(f.SortBy) == ""
}

// NoteRepository defines persistence operations for notes. Reads only see
// active rows and SoftDelete never removes a row.
type NoteRepository interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*Note, error)
	ListActive(ctx context.Context, order NoteOrder) ([]Note, error)
	QueryActive(ctx context.Context, filter NoteFilter) ([]Note, error)
	Create(ctx context.Context, note *Note) error
	// Update writes title, content and updated_at of an active note and
	// returns the number of affected rows.
	Update(ctx context.Context, note *Note) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
}
