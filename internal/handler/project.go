package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/response"
	"github.com/folio/folio-api/internal/service"
	"github.com/folio/folio-api/internal/storage"
)

// ProjectHandler handles HTTP requests for portfolio projects.
type ProjectHandler struct {
	responder
	service *service.ProjectService
	uploads uploader
}

func NewProjectHandler(svc *service.ProjectService, images storage.ImageStore, debug bool) *ProjectHandler {
	return &ProjectHandler{responder: responder{debug: debug}, service: svc, uploads: uploader{images: images}}
}

func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	response.List(w, "Projects fetched successfully", projects, len(projects))
}

func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Project fetched successfully", project)
}

func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(w, r)
	if !ok {
		return
	}

	req, uploaded, err := h.readRequest(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	project, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.uploads.discard(r.Context(), uploaded...)
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, "Project created successfully", project)
}

func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	req, uploaded, err := h.readRequest(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	project, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.uploads.discard(r.Context(), uploaded...)
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Project updated successfully", project)
}

func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Project deleted successfully", project)
}

// readRequest decodes the project fields. Uploads under "files" become the image
// gallery and a "file" upload becomes the main image; both may be sent together.
func (h *ProjectHandler) readRequest(w http.ResponseWriter, r *http.Request) (model.ProjectRequest, []string, error) {
	var req model.ProjectRequest

	p, err := readPayload(w, r)
	if err != nil {
		return req, nil, err
	}
	if err := p.decode(&req); err != nil {
		return req, nil, err
	}

	gallery, err := h.uploads.many(r.Context(), p.files("files"))
	if err != nil {
		return req, nil, err
	}
	image, err := h.uploads.one(r.Context(), firstFile(p, "file"))
	if err != nil {
		h.uploads.discard(r.Context(), gallery...)
		return req, nil, err
	}

	uploaded := gallery
	if len(gallery) > 0 {
		req.ImageURLs = gallery
	}
	if image != nil {
		req.ImageURL = image
		uploaded = append(uploaded, *image)
	}
	return req, uploaded, nil
}
