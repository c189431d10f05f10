// Package response writes the JSON envelope shared by every endpoint and maps
// domain errors to HTTP statuses.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/folio/folio-api/internal/crypto"
	"github.com/folio/folio-api/internal/mail"
	"github.com/folio/folio-api/internal/repository"
	"github.com/folio/folio-api/internal/revocation"
	"github.com/folio/folio-api/internal/service"
	"github.com/folio/folio-api/internal/storage"
)

// Envelope is the body of every response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

type Meta struct {
	Total int `json:"total"`
}

// JSON writes a successful envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// List writes a successful envelope with meta.total set to total.
func List(w http.ResponseWriter, message string, data any, total int) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: &Meta{Total: total}})
}

// Fail writes an error envelope with an explicit status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Message: message})
}

// Error maps err to a status and message and writes the error envelope.
// With debug set, the error text is included as stack.
func Error(w http.ResponseWriter, err error, debug bool) {
	status, message := Classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	}

	env := Envelope{Message: message}
	if debug {
		env.Stack = err.Error()
	}
	write(w, status, env)
}

// Classify returns the status code and client-facing message for err.
func Classify(err error) (int, string) {
	var verr *service.ValidationError

	switch {
	case errors.Is(err, crypto.ErrMissingSecret):
		return http.StatusInternalServerError, "Token secret is not configured"
	case errors.Is(err, crypto.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, crypto.ErrInvalidSignature), errors.Is(err, crypto.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, revocation.ErrTokenRevoked):
		return http.StatusUnauthorized, "Token revoked"
	case errors.Is(err, service.ErrMissingToken):
		return http.StatusUnauthorized, "No refresh token provided"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, storage.ErrInvalidFileType):
		return http.StatusBadRequest, "Only image files are allowed"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, notFoundMessage(err)
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, repository.ErrStore):
		return http.StatusInternalServerError, "Database error"
	case errors.Is(err, storage.ErrNotConfigured):
		return http.StatusInternalServerError, "Image storage is not configured"
	case errors.Is(err, storage.ErrUpload):
		return http.StatusInternalServerError, "Error uploading file"
	case errors.Is(err, mail.ErrNotConfigured):
		return http.StatusInternalServerError, "Mail relay is not configured"
	case errors.Is(err, mail.ErrSend):
		return http.StatusInternalServerError, "Failed to send email"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

var notFoundMessages = []struct {
	err     error
	message string
}{
	{service.ErrUserNotFound, "User not found"},
	{service.ErrBlogNotFound, "Blog not found"},
	{service.ErrProjectNotFound, "Project not found"},
	{service.ErrSkillNotFound, "Skill not found"},
}

func notFoundMessage(err error) string {
	for _, m := range notFoundMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return "Not found"
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
