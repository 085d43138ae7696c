package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/msomdec/notekeeper/internal/domain"
	"github.com/msomdec/notekeeper/internal/result"
)

// NoteInput carries the editable fields of a note.
type NoteInput struct {
	Title   string
	Content string
}

// NoteService implements the note use cases. The actor passed to the
// mutating operations is nil for anonymous callers.
type NoteService struct {
	notes domain.NoteRepository

	clock func() time.Time
	idGen func() uuid.UUID
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes domain.NoteRepository) *NoteService {
	return &NoteService{
		notes: notes,
		clock: time.Now,
		idGen: uuid.New,
	}
}

// List returns active notes. An empty filter lists newest first; otherwise
// the search and sort of filter are applied. A blank search is ignored and a
// non-blank one is matched as given, surrounding spaces included.
func (s *NoteService) List(ctx context.Context, filter domain.NoteFilter) result.Result[[]domain.Note] {
	if strings.TrimSpace(filter.Search) == "" {
		filter.Search = ""
	}
	filter.SortBy = strings.TrimSpace(filter.SortBy)

	var (
		notes []domain.Note
		err   error
	)
	if filter.IsZero() {
		notes, err = s.notes.ListActive(ctx, domain.NoteOrderNewest)
	} else {
		notes, err = s.notes.QueryActive(ctx, filter)
	}
	if err != nil {
		return fault[[]domain.Note](ctx, "list notes", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return result.Success(notes, "Notes retrieved successfully")
}

// GetByID returns the active note with the given id.
func (s *NoteService) GetByID(ctx context.Context, id uuid.UUID) result.Result[domain.Note] {
	note, r, ok := s.load(ctx, id)
	if !ok {
		return r
	}
	return result.Success(*note, "Note retrieved successfully")
}

// Create stores a new note owned by actor.
func (s *NoteService) Create(ctx context.Context, actor *uuid.UUID, in NoteInput) result.Result[domain.Note] {
	if errs := validateNote(in); len(errs) > 0 {
		return result.FailMany[domain.Note](errs, "Validation failed")
	}

	now := s.clock().UTC()
	note := &domain.Note{
		ID:        s.idGen(),
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		UserID:    actor,
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return fault[domain.Note](ctx, "create note", err)
	}

	slog.InfoContext(ctx, "note created", "note_id", note.ID)
	return result.Success(*note, "Note created successfully")
}

// Update overwrites the title and content of an active note.
func (s *NoteService) Update(ctx context.Context, actor *uuid.UUID, id uuid.UUID, in NoteInput) result.Result[domain.Note] {
	if errs := validateNote(in); len(errs) > 0 {
		return result.FailMany[domain.Note](errs, "Validation failed")
	}

	note, r, ok := s.load(ctx, id)
	if !ok {
		return r
	}
	if !note.OwnedBy(actor) {
		return result.FailWith[domain.Note](result.Forbidden("You cannot modify this note"))
	}

	now := s.clock().UTC()
	note.Title = strings.TrimSpace(in.Title)
	note.Content = in.Content
	note.UpdatedAt = &now

	rows, err := s.notes.Update(ctx, note)
	if err != nil {
		return fault[domain.Note](ctx, "update note", err)
	}
	if rows == 0 {
		return result.Fail[domain.Note](result.CodeConflict, "Note was modified or deleted concurrently")
	}
	return result.Success(*note, "Note updated successfully")
}

// Delete soft-deletes an active note and returns it as it was before.
func (s *NoteService) Delete(ctx context.Context, actor *uuid.UUID, id uuid.UUID) result.Result[domain.Note] {
	note, r, ok := s.load(ctx, id)
	if !ok {
		return r
	}
	if !note.OwnedBy(actor) {
		return result.FailWith[domain.Note](result.Forbidden("You cannot delete this note"))
	}

	rows, err := s.notes.SoftDelete(ctx, id, s.clock().UTC())
	if err != nil {
		return fault[domain.Note](ctx, "delete note", err)
	}
	if rows == 0 {
		return result.Fail[domain.Note](result.CodeConflict, "Note was modified or deleted concurrently")
	}

	slog.InfoContext(ctx, "note deleted", "note_id", id)
	return result.Success(*note, "Note deleted successfully")
}

// load fetches an active note. When ok is false, r holds the failure.
func (s *NoteService) load(ctx context.Context, id uuid.UUID) (note *domain.Note, r result.Result[domain.Note], ok bool) {
	note, err := s.notes.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, result.FailWith[domain.Note](result.NotFound("Note")), false
		}
		return nil, fault[domain.Note](ctx, "get note", err), false
	}
	return note, r, true
}

func validateNote(in NoteInput) []result.Error {
	var errs []result.Error

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		errs = append(errs, result.Validation("title", "Title is required"))
	case utf8.RuneCountInString(title) > domain.NoteTitleMaxLength:
		errs = append(errs, result.Validation("title",
			fmt.Sprintf("Title must be at most %d characters", domain.NoteTitleMaxLength)))
	}

	if strings.TrimSpace(in.Content) == "" {
		errs = append(errs, result.Validation("content", "Content is required"))
	}

	return errs
}
