package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
)

// errorResponse is the JSON error envelope returned by every endpoint.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// and otherwise dropped — headers are already out the door.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

// writeError maps a service error onto the HTTP error taxonomy. Sentinel
// errors carry their own context in the message (resource identifier,
// current vs required state); unrecognized errors become an opaque 500 so
// internal details never leak to the self-service channel.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", err)
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorBody(w, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, domain.ErrForbidden):
		writeErrorBody(w, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, domain.ErrInvalidTransition):
		writeErrorBody(w, http.StatusConflict, "invalid_state_transition", err)
	case errors.Is(err, domain.ErrResourceUnavailable):
		writeErrorBody(w, http.StatusConflict, "resource_unavailable", err)
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", err)
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal", Message: "internal server error"},
		})
	}
}

func writeErrorBody(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, errorResponse{
		Error: errorDetail{Code: code, Message: unwrapMessage(err)},
	})
}

// badRequest reports a request rejected before reaching the service layer
// (malformed body, bad UUID, bad query param).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorDetail{Code: "bad_request", Message: message},
	})
}

// unwrapMessage strips the service/repo call-site prefixes from a wrapped
// sentinel error, leaving the human-readable part.
// e.g. "service.TripService.Dispatch: resource unavailable: TRACTOR TR-5 is
// IN_TRANSIT" → "resource unavailable: TRACTOR TR-5 is IN_TRANSIT".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 {
			break
		}
		prefix := msg[:i]
		// Call-site prefixes look like "service.TripService.Dispatch" or
		// "repo.TripRepo.Create"; sentinel text never contains a dot before
		// the first colon.
		if !strings.Contains(prefix, ".") {
			break
		}
		msg = msg[i+2:]
	}
	return msg
}

// --- request parsing helpers ------------------------------------------------

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// queryInt parses an optional positive integer query parameter.
// Absent or empty returns (nil, nil); malformed input returns an error.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
