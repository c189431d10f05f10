package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/response"
	"github.com/folio/folio-api/internal/service"
	"github.com/folio/folio-api/internal/storage"
)

// BlogHandler handles HTTP requests for blog posts.
type BlogHandler struct {
	responder
	service *service.BlogService
	uploads uploader
}

func NewBlogHandler(svc *service.BlogService, images storage.ImageStore, debug bool) *BlogHandler {
	return &BlogHandler{responder: responder{debug: debug}, service: svc, uploads: uploader{images: images}}
}

func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	response.List(w, "Blogs fetched successfully", blogs, len(blogs))
}

func (h *BlogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Blog fetched successfully", blog)
}

func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(w, r)
	if !ok {
		return
	}

	req, cover, err := h.readRequest(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	blog, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.uploads.discardOne(r.Context(), cover)
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, "Blog created successfully", blog)
}

func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	req, cover, err := h.readRequest(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	blog, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.uploads.discardOne(r.Context(), cover)
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Blog updated successfully", blog)
}

func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Blog deleted successfully", blog)
}

// readRequest decodes the blog fields and uploads an optional "file" as the cover image.
func (h *BlogHandler) readRequest(w http.ResponseWriter, r *http.Request) (model.BlogRequest, *string, error) {
	var req model.BlogRequest

	p, err := readPayload(w, r)
	if err != nil {
		return req, nil, err
	}
	if err := p.decode(&req); err != nil {
		return req, nil, err
	}

	cover, err := h.uploads.one(r.Context(), firstFile(p, "file"))
	if err != nil {
		return req, nil, err
	}
	if cover != nil {
		req.CoverImage = cover
	}
	return req, cover, nil
}
