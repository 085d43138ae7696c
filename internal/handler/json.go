package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/msomdec/notekeeper/internal/result"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// readJSON decodes the request body into the given destination.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// respond writes res as an envelope. successStatus applies to Ok results;
// failures use the status mapped from their first error code.
func respond[T any](w http.ResponseWriter, r *http.Request, res result.Result[T], successStatus int) {
	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
		w.Header().Set(requestIDHeader, requestID)
	}

	status := res.Status(successStatus)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"code", res.FirstCode(),
			"request_id", requestID,
		)
	}
	writeJSON(w, status, res.Envelope(requestID))
}

// fail writes a single-error failure envelope.
func fail(w http.ResponseWriter, r *http.Request, e result.Error) {
	respond(w, r, result.FailWith[result.Void](e), 0)
}

func badBody(w http.ResponseWriter, r *http.Request) {
	fail(w, r, result.Business(result.CodeBadRequest, "Invalid request body"))
}
