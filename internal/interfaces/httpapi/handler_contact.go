package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type submitContactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=500"`
	Message string `json:"message" validate:"required,max=5000"`
}

type contactSubmittedResponse struct {
	Message    string         `json:"message"`
	Submission contactFormDTO `json:"submission"`
}

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitContact")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitContactRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.contactService.Submit(ctx, principal.UserID, usecase.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit contact form failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, contactSubmittedResponse{
		Message:    "Contact form submitted successfully",
		Submission: contactToDTO(item),
	})
}

func (h *Handler) ListContactForms(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContactForms")
	defer span.End()

	items, err := h.contactService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list contact forms failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]contactFormDTO, 0, len(items))
	for _, item := range items {
		out = append(out, contactToDTO(item))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteContactForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteContactForm")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.contactService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete contact form failed", "contact_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{
		"id":      id,
		"message": "Contact form deleted successfully",
	})
}
