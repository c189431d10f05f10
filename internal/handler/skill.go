package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/response"
	"github.com/folio/folio-api/internal/service"
	"github.com/folio/folio-api/internal/storage"
)

// SkillHandler handles HTTP requests for skills.
type SkillHandler struct {
	responder
	service *service.SkillService
	uploads uploader
}

func NewSkillHandler(svc *service.SkillService, images storage.ImageStore, debug bool) *SkillHandler {
	return &SkillHandler{responder: responder{debug: debug}, service: svc, uploads: uploader{images: images}}
}

func (h *SkillHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	response.List(w, "Skills fetched successfully", skills, len(skills))
}

func (h *SkillHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	skill, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Skill fetched successfully", skill)
}

func (h *SkillHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(w, r)
	if !ok {
		return
	}

	req, icon, err := h.readRequest(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	skill, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.uploads.discardOne(r.Context(), icon)
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, "Skill created successfully", skill)
}

func (h *SkillHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	req, icon, err := h.readRequest(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	skill, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.uploads.discardOne(r.Context(), icon)
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Skill updated successfully", skill)
}

func (h *SkillHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	skill, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Skill deleted successfully", skill)
}

func (h *SkillHandler) readRequest(w http.ResponseWriter, r *http.Request) (model.SkillRequest, *string, error) {
	var req model.SkillRequest

	p, err := readPayload(w, r)
	if err != nil {
		return req, nil, err
	}
	if err := p.decode(&req); err != nil {
		return req, nil, err
	}

	icon, err := h.uploads.one(r.Context(), firstFile(p, "file"))
	if err != nil {
		return req, nil, err
	}
	if icon != nil {
		req.IconURL = icon
	}
	return req, icon, nil
}
