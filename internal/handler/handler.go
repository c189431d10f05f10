package handler

import (
	"errors"
	"net/http"

	"github.com/folio/folio-api/internal/middleware"
	"github.com/folio/folio-api/internal/response"
)

// responder writes error envelopes. With debug set, error text is exposed as stack.
type responder struct {
	debug bool
}

func (rs responder) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		response.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, errInvalidPayload):
		response.Fail(w, http.StatusBadRequest, "Invalid request body")
	default:
		response.Error(w, err, rs.debug)
	}
}

// identity returns the authenticated identity or writes a 401.
func identity(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "User not authenticated")
		return "", false
	}
	return id.ID, true
}
