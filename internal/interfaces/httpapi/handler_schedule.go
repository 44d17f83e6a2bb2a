package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type createScheduleRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
	Maps string `json:"maps" validate:"required"`
	Type string `json:"type" validate:"required"`
}

type updateScheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Maps string `json:"maps"`
	Type string `json:"type"`
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSchedules")
	defer span.End()

	items, err := h.scheduleService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list schedules failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]scheduleDTO, 0, len(items))
	for _, item := range items {
		out = append(out, scheduleToDTO(item))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSchedule")
	defer span.End()

	var req createScheduleRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.scheduleService.Create(ctx, usecase.CreateScheduleInput{
		Date: req.Date,
		Time: req.Time,
		Maps: req.Maps,
		Type: req.Type,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create schedule failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, scheduleToDTO(item))
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSchedule")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req updateScheduleRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.scheduleService.Update(ctx, id, schedule.Patch{
		Date: req.Date,
		Time: req.Time,
		Maps: req.Maps,
		Type: req.Type,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update schedule failed", "schedule_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, scheduleToDTO(item))
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSchedule")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.scheduleService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete schedule failed", "schedule_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"id": id})
}
