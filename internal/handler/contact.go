package handler

import (
	"net/http"

	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/response"
	"github.com/folio/folio-api/internal/service"
)

// ContactHandler forwards contact-form submissions by email.
type ContactHandler struct {
	responder
	service *service.ContactService
}

func NewContactHandler(svc *service.ContactService, debug bool) *ContactHandler {
	return &ContactHandler{responder: responder{debug: debug}, service: svc}
}

// HandleSend handles POST /api/v1/contact/send requests.
func (h *ContactHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req model.ContactRequest
	if err := p.decode(&req); err != nil {
		h.fail(w, err)
		return
	}

	res, err := h.service.Send(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "Message sent successfully", res)
}
