package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

// GetRegistrationConfig answers 201 on the first call, when the default row is created.
func (h *Handler) GetRegistrationConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRegistrationConfig")
	defer span.End()

	view, err := h.registrationService.GetConfig(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get registration config failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if view.Created {
		status = http.StatusCreated
	}
	writeJSON(ctx, w, status, configToDTO(view))
}

func (h *Handler) UpdateRegistrationConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRegistrationConfig")
	defer span.End()

	body := map[string]any{}
	if err := decodeJSON(r, &body, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	update, err := usecase.ParseConfigUpdate(body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.registrationService.UpdateConfig(ctx, update)
	if err != nil {
		h.logger.WarnContext(ctx, "update registration config failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, configToDTO(view))
}

// CheckRegistration is the read-only gate preview used by the form page.
func (h *Handler) CheckRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckRegistration")
	defer span.End()

	status, err := h.registrationService.CheckStatus(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "check registration failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, statusToDTO(status))
}

func (h *Handler) GetRegistrationDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRegistrationDashboard")
	defer span.End()

	dashboard, err := h.dashboardService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get registration dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}
