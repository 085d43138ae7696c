package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/msomdec/notekeeper/internal/domain"
	"github.com/msomdec/notekeeper/internal/result"
	"github.com/msomdec/notekeeper/internal/service"
)

// NoteHandler handles note HTTP requests. The caller, when authenticated,
// becomes the owner of created notes.
type NoteHandler struct {
	notes *service.NoteService
}

func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// HandleList lists active notes.
// GET /api/v1/notes?search=&sortBy=
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := h.notes.List(r.Context(), domain.NoteFilter{
		Search: q.Get("search"),
		SortBy: q.Get("sortBy"),
	})
	respond(w, r, result.Map(res, toNoteDTOs), http.StatusOK)
}

// HandleGet returns a single note.
// GET /api/v1/notes/{id}
func (h *NoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respond(w, r, result.Map(h.notes.GetByID(r.Context(), id), toNoteDTO), http.StatusOK)
}

// HandleCreate creates a note.
// POST /api/v1/notes
// Request: {"title":"...","content":"..."}
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := readJSON(w, r, &req); err != nil {
		badBody(w, r)
		return
	}
	res := h.notes.Create(r.Context(), UserIDFromContext(r.Context()), service.NoteInput(req))
	respond(w, r, result.Map(res, toNoteDTO), http.StatusCreated)
}

// HandleUpdate replaces the title and content of a note.
// PUT /api/v1/notes/{id}
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if err := readJSON(w, r, &req); err != nil {
		badBody(w, r)
		return
	}
	res := h.notes.Update(r.Context(), UserIDFromContext(r.Context()), id, service.NoteInput(req))
	respond(w, r, result.Map(res, toNoteDTO), http.StatusOK)
}

// HandleDelete soft-deletes a note and returns it.
// DELETE /api/v1/notes/{id}
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.notes.Delete(r.Context(), UserIDFromContext(r.Context()), id)
	respond(w, r, result.Map(res, toNoteDTO), http.StatusOK)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		fail(w, r, result.Validation("id", "Invalid note ID"))
		return uuid.Nil, false
	}
	return id, true
}
