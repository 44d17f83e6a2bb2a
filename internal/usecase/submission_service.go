package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

// SubmitInput is one form submission. The submitter comes from the session, or from the
// client-generated guest id when there is no session.
type SubmitInput struct {
	Form      team.Form
	Submitter team.Submitter
}

type SubmissionService struct {
	configs registration.Repository
	teams   team.Repository
	idGen   idgen.Generator
	metrics *Metrics
	logger  *logging.Logger
	now     func() time.Time
}

func NewSubmissionService(
	configs registration.Repository,
	teams team.Repository,
	idGen idgen.Generator,
	metrics *Metrics,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionService{
		configs: configs,
		teams:   teams,
		idGen:   idGen,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Submit admits a team. The gate is checked up front so a closed registration answers before
// validation, then again inside the store's admission unit together with the duplicate guard.
func (s *SubmissionService) Submit(ctx context.Context, input SubmitInput) (result team.AdmitResult, err error) {
	sub := team.Submitter{
		UserID:      strings.TrimSpace(input.Submitter.UserID),
		GuestUserID: strings.TrimSpace(input.Submitter.GuestUserID),
	}.Normalized()

	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Submit",
		attribute.Bool("submitter.guest", sub.UserID == ""),
	)
	defer finishSpan(span, &err)

	now := s.now().UTC()

	cfg, found, err := s.configs.Find(ctx)
	if err != nil {
		s.metrics.observeSubmission(outcomeError)
		return team.AdmitResult{}, fmt.Errorf("get registration config: %w", err)
	}
	if !found {
		cfg = registration.DefaultConfig()
	}
	count, err := s.teams.Count(ctx)
	if err != nil {
		s.metrics.observeSubmission(outcomeError)
		return team.AdmitResult{}, fmt.Errorf("count teams: %w", err)
	}
	if decision := registration.CheckAdmission(cfg, count, now); !decision.Allowed {
		s.metrics.observeDenial(decision.Cause)
		s.logger.InfoContext(ctx, "submission denied by admission gate", "cause", decision.Cause, "current_teams", count)
		return team.AdmitResult{}, decision.Err()
	}

	form := input.Form.Normalize()
	if err := form.Validate(); err != nil {
		s.metrics.observeSubmission(outcomeInvalid)
		return team.AdmitResult{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		s.metrics.observeSubmission(outcomeError)
		return team.AdmitResult{}, fmt.Errorf("generate team id: %w", err)
	}
	reg := team.NewRegistration(teamID, form, sub, now)

	result, err = s.teams.Admit(ctx, reg, func(state team.AdmissionState) error {
		if err := registration.CheckAdmission(state.Config, state.CurrentTeams, now).Err(); err != nil {
			return err
		}
		return team.CheckDuplicate(sub, state.Existing)
	}, now)
	if err != nil {
		return team.AdmitResult{}, s.classifyAdmitError(ctx, err, sub)
	}

	s.metrics.observeSubmission(outcomeAccepted)
	s.logger.InfoContext(ctx, "team registration admitted",
		"team_id", result.Registration.ID,
		"current_teams", result.CurrentTeams,
		"guest", sub.UserID == "",
	)
	if result.AutoClosed {
		s.metrics.observeAutoClose("submission")
		s.logger.InfoContext(ctx, "registration auto-closed at capacity",
			"current_teams", result.CurrentTeams,
			"max_teams", derefInt(result.Config.MaxTeams),
		)
	}
	return result, nil
}

func (s *SubmissionService) classifyAdmitError(ctx context.Context, err error, sub team.Submitter) error {
	var denied *registration.DeniedError
	switch {
	case errors.As(err, &denied):
		s.metrics.observeDenial(denied.Cause)
		s.logger.InfoContext(ctx, "submission denied at write time", "cause", denied.Cause)
		return err
	case errors.Is(err, team.ErrDuplicateSubmission):
		s.metrics.observeSubmission(outcomeDuplicate)
		s.logger.WarnContext(ctx, "duplicate submission rejected", "user_id", sub.UserID, "guest_user_id", sub.GuestUserID)
		return err
	case errors.Is(err, team.ErrUniquenessViolation):
		s.metrics.observeSubmission(outcomeConflict)
		s.logger.WarnContext(ctx, "submission collided with existing contact details", "error", err)
		return err
	default:
		s.metrics.observeSubmission(outcomeError)
		s.logger.ErrorContext(ctx, "admit team registration failed", "error", err)
		return fmt.Errorf("admit team registration: %w", err)
	}
}

// GetOwn returns the caller's registration, if any.
func (s *SubmissionService) GetOwn(ctx context.Context, userID string) (reg team.Registration, found bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.GetOwn")
	defer finishSpan(span, &err)

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return team.Registration{}, false, fmt.Errorf("%w: session is required", ErrUnauthorized)
	}
	reg, found, err = s.teams.GetByUserID(ctx, userID)
	if err != nil {
		return team.Registration{}, false, fmt.Errorf("get registration by user: %w", err)
	}
	return reg, found, nil
}

// ClaimGuest moves a guest's registration to the account that just logged in.
func (s *SubmissionService) ClaimGuest(ctx context.Context, userID, guestUserID string) (claimed int, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.ClaimGuest")
	defer finishSpan(span, &err)

	userID = strings.TrimSpace(userID)
	guestUserID = strings.TrimSpace(guestUserID)
	if userID == "" {
		return 0, fmt.Errorf("%w: session is required", ErrUnauthorized)
	}
	if guestUserID == "" {
		return 0, fmt.Errorf("%w: guest user id is required", ErrInvalidInput)
	}

	claimed, err = s.teams.ClaimGuest(ctx, guestUserID, userID, s.now().UTC())
	if err != nil {
		if errors.Is(err, team.ErrDuplicateSubmission) {
			s.logger.WarnContext(ctx, "guest claim refused, user already owns a registration", "user_id", userID)
			return 0, err
		}
		return 0, fmt.Errorf("claim guest registrations: %w", err)
	}
	if claimed > 0 {
		s.logger.InfoContext(ctx, "guest registrations claimed", "user_id", userID, "claimed", claimed)
	}
	return claimed, nil
}
