package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type Handler struct {
	registrationService *usecase.RegistrationService
	submissionService   *usecase.SubmissionService
	teamService         *usecase.TeamService
	dashboardService    *usecase.DashboardService
	scheduleService     *usecase.ScheduleService
	roomService         *usecase.RoomService
	contactService      *usecase.ContactService
	formConfigService   *usecase.FormConfigService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	registrationService *usecase.RegistrationService,
	submissionService *usecase.SubmissionService,
	teamService *usecase.TeamService,
	dashboardService *usecase.DashboardService,
	scheduleService *usecase.ScheduleService,
	roomService *usecase.RoomService,
	contactService *usecase.ContactService,
	formConfigService *usecase.FormConfigService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		registrationService: registrationService,
		submissionService:   submissionService,
		teamService:         teamService,
		dashboardService:    dashboardService,
		scheduleService:     scheduleService,
		roomService:         roomService,
		contactService:      contactService,
		formConfigService:   formConfigService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a JSON body, rejecting unknown fields when strict. An empty body decodes to the zero value.
func decodeJSON(r *http.Request, dst any, strict bool) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		return "", fmt.Errorf("%w: id is required", usecase.ErrInvalidInput)
	}
	return id, nil
}
