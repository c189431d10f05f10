package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio/folio-api/internal/cookie"
	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/response"
	"github.com/folio/folio-api/internal/service"
	"github.com/folio/folio-api/internal/storage"
)

// UserHandler handles registration and profile management.
type UserHandler struct {
	responder
	service *service.UserService
	uploads uploader
	cookies cookie.Writer
}

func NewUserHandler(svc *service.UserService, images storage.ImageStore, cookies cookie.Writer, debug bool) *UserHandler {
	return &UserHandler{responder: responder{debug: debug}, service: svc, uploads: uploader{images: images}, cookies: cookies}
}

// HandleRegister handles POST /api/v1/users/register requests.
// The picture may arrive as a "file" upload next to a "data" JSON field.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req model.RegisterRequest
	if err := p.decode(&req); err != nil {
		h.fail(w, err)
		return
	}

	picture, err := h.uploads.one(r.Context(), firstFile(p, "file"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if picture != nil {
		req.Picture = picture
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.uploads.discardOne(r.Context(), picture)
		h.fail(w, err)
		return
	}

	h.cookies.Set(w, res.Tokens)
	response.JSON(w, http.StatusCreated, "User registered successfully", res.User)
}

// HandleMe handles GET /api/v1/users/me requests.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(w, r)
	if !ok {
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, "User profile fetched successfully", user)
}

// HandleUpdate handles PATCH and PUT /api/v1/users/{id} requests.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req model.UpdateUserRequest
	if err := p.decode(&req); err != nil {
		h.fail(w, err)
		return
	}

	picture, err := h.uploads.one(r.Context(), firstFile(p, "file"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if picture != nil {
		req.Picture = picture
	}

	user, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.uploads.discardOne(r.Context(), picture)
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, "User updated successfully", user)
}

// HandleDelete handles DELETE /api/v1/users/{id} requests.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, "User deleted successfully", nil)
}
