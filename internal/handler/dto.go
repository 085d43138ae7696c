package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/notekeeper/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UserDTO is the JSON representation of a user profile.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt *string   `json:"updatedAt"`
}

func toUserDTO(p domain.UserProfile) UserDTO {
	dto := UserDTO{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
	if p.Phone != "" {
		dto.Phone = &p.Phone
	}
	return dto
}

// SessionDTO is the JSON representation of a login.
type SessionDTO struct {
	User      UserDTO `json:"user"`
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expiresAt"`
}

func toSessionDTO(s domain.AuthSession) SessionDTO {
	return SessionDTO{
		User:      toUserDTO(s.User),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
	}
}

// NoteDTO is the JSON representation of a note.
type NoteDTO struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	UserID    *uuid.UUID `json:"userId"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt *string    `json:"updatedAt"`
}

func toNoteDTO(n domain.Note) NoteDTO {
	return NoteDTO{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		UserID:    n.UserID,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		UpdatedAt: formatTime(n.UpdatedAt),
	}
}

func toNoteDTOs(notes []domain.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i, n := range notes {
		dtos[i] = toNoteDTO(n)
	}
	return dtos
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
