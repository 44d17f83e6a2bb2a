package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

// formText accepts any JSON value so a mistyped field surfaces as a field error instead of
// failing the whole decode.
type formText struct {
	Value    string
	Mistyped bool
}

func (t *formText) UnmarshalJSON(b []byte) error {
	*t = formText{}
	if string(b) == "null" {
		return nil
	}
	if err := sonic.Unmarshal(b, &t.Value); err != nil {
		*t = formText{Mistyped: true}
	}
	return nil
}

type submitFormRequest struct {
	GuestUserID        string   `json:"guestUserId"`
	TeamName           formText `json:"teamName"`
	IGLName            formText `json:"iglName"`
	Player1            formText `json:"player1"`
	PlayerID1          formText `json:"playerId1"`
	Player2            formText `json:"player2"`
	PlayerID2          formText `json:"playerId2"`
	Player3            formText `json:"player3"`
	PlayerID3          formText `json:"playerId3"`
	Player4            formText `json:"player4"`
	PlayerID4          formText `json:"playerId4"`
	IGLMail            formText `json:"iglMail"`
	IGLAlternateMail   formText `json:"iglAlternateMail"`
	IGLNumber          formText `json:"iglNumber"`
	IGLAlternateNumber formText `json:"iglAlternateNumber"`
}

type namedText struct {
	name string
	text formText
}

// texts lists the form fields in form order.
func (req submitFormRequest) texts() []namedText {
	return []namedText{
		{"teamName", req.TeamName},
		{"iglName", req.IGLName},
		{"player1", req.Player1},
		{"playerId1", req.PlayerID1},
		{"player2", req.Player2},
		{"playerId2", req.PlayerID2},
		{"player3", req.Player3},
		{"playerId3", req.PlayerID3},
		{"player4", req.Player4},
		{"playerId4", req.PlayerID4},
		{"iglMail", req.IGLMail},
		{"iglAlternateMail", req.IGLAlternateMail},
		{"iglNumber", req.IGLNumber},
		{"iglAlternateNumber", req.IGLAlternateNumber},
	}
}

func (req submitFormRequest) form() team.Form {
	return team.Form{
		TeamName:           req.TeamName.Value,
		IGLName:            req.IGLName.Value,
		Player1:            req.Player1.Value,
		PlayerID1:          req.PlayerID1.Value,
		Player2:            req.Player2.Value,
		PlayerID2:          req.PlayerID2.Value,
		Player3:            req.Player3.Value,
		PlayerID3:          req.PlayerID3.Value,
		Player4:            req.Player4.Value,
		PlayerID4:          req.PlayerID4.Value,
		IGLMail:            req.IGLMail.Value,
		IGLAlternateMail:   req.IGLAlternateMail.Value,
		IGLNumber:          req.IGLNumber.Value,
		IGLAlternateNumber: req.IGLAlternateNumber.Value,
	}
}

// typeErrors returns nil when every field was a string or null. Otherwise it reports the
// mistyped fields together with any other field the validator rejects, in form order.
func (req submitFormRequest) typeErrors() error {
	bad := make(map[string]string)
	for _, f := range req.texts() {
		if f.text.Mistyped {
			bad[f.name] = team.FieldMessage(f.name)
		}
	}
	if len(bad) == 0 {
		return nil
	}

	var verr *team.ValidationError
	if errors.As(req.form().Normalize().Validate(), &verr) {
		for _, fe := range verr.Fields {
			bad[fe.Field] = fe.Message
		}
	}

	out := &team.ValidationError{Fields: make([]team.FieldError, 0, len(bad))}
	for _, f := range req.texts() {
		if msg, ok := bad[f.name]; ok {
			out.Fields = append(out.Fields, team.FieldError{Field: f.name, Message: msg})
		}
	}
	return out
}

type claimGuestRequest struct {
	GuestUserID string `json:"guestUserId" validate:"required"`
}

type claimGuestResponse struct {
	Claimed int `json:"claimed"`
}

// SubmitForm admits one team. A signed-in caller submits as themselves; otherwise the guest id
// comes from the body or the X-Guest-User-Id header.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitForm")
	defer span.End()

	var req submitFormRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.typeErrors(); err != nil {
		writeError(ctx, w, err)
		return
	}

	sub := team.Submitter{GuestUserID: guestIDFrom(r, req.GuestUserID)}
	if principal, ok := principalFromContext(ctx); ok {
		sub.UserID = principal.UserID
	}

	result, err := h.submissionService.Submit(ctx, usecase.SubmitInput{Form: req.form(), Submitter: sub})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, registrationToDTO(result.Registration))
}

// GetOwnForm returns the caller's registration, or formData null when there is none.
func (h *Handler) GetOwnForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOwnForm")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	reg, found, err := h.submissionService.GetOwn(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get own form failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := ownFormDTO{}
	if found {
		dto := registrationToDTO(reg)
		out.FormData = &dto
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) ClaimGuestForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimGuestForm")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req claimGuestRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	req.GuestUserID = guestIDFrom(r, req.GuestUserID)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	claimed, err := h.submissionService.ClaimGuest(ctx, principal.UserID, req.GuestUserID)
	if err != nil {
		h.logger.WarnContext(ctx, "claim guest form failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, claimGuestResponse{Claimed: claimed})
}
