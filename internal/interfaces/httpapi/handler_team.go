package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type updateFormRequest struct {
	TeamName           *string `json:"teamName"`
	IGLName            *string `json:"iglName"`
	Player1            *string `json:"player1"`
	PlayerID1          *string `json:"playerId1"`
	Player2            *string `json:"player2"`
	PlayerID2          *string `json:"playerId2"`
	Player3            *string `json:"player3"`
	PlayerID3          *string `json:"playerId3"`
	Player4            *string `json:"player4"`
	PlayerID4          *string `json:"playerId4"`
	IGLMail            *string `json:"iglMail"`
	IGLAlternateMail   *string `json:"iglAlternateMail"`
	IGLNumber          *string `json:"iglNumber"`
	IGLAlternateNumber *string `json:"iglAlternateNumber"`
}

type toggleFormRequest struct {
	IsEnabled *bool `json:"isEnabled" validate:"required"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	listing, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, listingToDTO(listing))
}

func (h *Handler) ListAdminForms(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAdminForms")
	defer span.End()

	items, err := h.teamService.ListForAdmin(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list admin forms failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, adminTeamsToDTO(items))
}

func (h *Handler) UpdateAdminForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateAdminForm")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req updateFormRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	reg, err := h.teamService.UpdateTeam(ctx, id, usecase.TeamPatch{
		TeamName:           req.TeamName,
		IGLName:            req.IGLName,
		Player1:            req.Player1,
		PlayerID1:          req.PlayerID1,
		Player2:            req.Player2,
		PlayerID2:          req.PlayerID2,
		Player3:            req.Player3,
		PlayerID3:          req.PlayerID3,
		Player4:            req.Player4,
		PlayerID4:          req.PlayerID4,
		IGLMail:            req.IGLMail,
		IGLAlternateMail:   req.IGLAlternateMail,
		IGLNumber:          req.IGLNumber,
		IGLAlternateNumber: req.IGLAlternateNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update admin form failed", "team_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, registrationToDTO(reg))
}

func (h *Handler) DeleteAdminForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAdminForm")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.teamService.DeleteTeam(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete admin form failed", "team_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) ToggleAdminForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleAdminForm")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req toggleFormRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	st, err := h.teamService.SetEnabled(ctx, id, *req.IsEnabled)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle admin form failed", "team_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamStatusDTO{ID: st.TeamID, IsEnabled: st.IsEnabled, UpdatedAt: st.UpdatedAt})
}
