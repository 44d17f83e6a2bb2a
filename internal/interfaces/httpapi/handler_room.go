package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/room"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type createRoomRequest struct {
	RoomID            string     `json:"roomId" validate:"required"`
	RoomPassword      string     `json:"roomPassword" validate:"required"`
	PasswordShareTime *time.Time `json:"passwordShareTime"`
}

func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRooms")
	defer span.End()

	views, err := h.roomService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rooms failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]roomDTO, 0, len(views))
	for _, v := range views {
		out = append(out, roomToDTO(v.Room, v.RegisteredTeams))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRoom")
	defer span.End()

	var req createRoomRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.roomService.Create(ctx, usecase.CreateRoomInput{
		RoomID:            req.RoomID,
		RoomPassword:      req.RoomPassword,
		PasswordShareTime: req.PasswordShareTime,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create room failed", "room_id", req.RoomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, roomToDTO(item, 0))
}

func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRoom")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	body := map[string]any{}
	if err := decodeJSON(r, &body, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	patch, err := parseRoomPatch(body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.roomService.Update(ctx, id, patch)
	if err != nil {
		h.logger.WarnContext(ctx, "update room failed", "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, roomToDTO(item, 0))
}

// GetRoomCredentials always answers 200; fields the caller may not see are null.
func (h *Handler) GetRoomCredentials(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoomCredentials")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	creds, _, err := h.roomService.Credentials(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get room credentials failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, credentialsToDTO(creds))
}

// parseRoomPatch keeps absent keys as no-ops. An explicit null passwordShareTime clears it.
func parseRoomPatch(body map[string]any) (room.Patch, error) {
	var patch room.Patch

	flag := func(key string) (*bool, error) {
		raw, ok := body[key]
		if !ok || raw == nil {
			return nil, nil
		}
		v, isBool := raw.(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
		}
		return &v, nil
	}

	var err error
	if patch.VisibleToAll, err = flag("visibleToAll"); err != nil {
		return room.Patch{}, err
	}
	if patch.IsLocked, err = flag("isLocked"); err != nil {
		return room.Patch{}, err
	}

	if raw, ok := body["passwordShareTime"]; ok {
		patch.SetShareTime = true
		switch v := raw.(type) {
		case nil:
		case string:
			if strings.TrimSpace(v) == "" {
				break
			}
			t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
			if err != nil {
				return room.Patch{}, fmt.Errorf("%w: passwordShareTime %q is not an RFC 3339 timestamp", usecase.ErrInvalidInput, v)
			}
			t = t.UTC()
			patch.PasswordShareTime = &t
		default:
			return room.Patch{}, fmt.Errorf("%w: passwordShareTime must be a timestamp or null", usecase.ErrInvalidInput)
		}
	}

	return patch, nil
}
