package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

// ConfigView is the config together with the live team count.
type ConfigView struct {
	Config       registration.Config
	CurrentTeams int
	Created      bool
}

type RegistrationService struct {
	configs registration.Repository
	teams   team.Repository
	metrics *Metrics
	logger  *logging.Logger
	now     func() time.Time
}

func NewRegistrationService(
	configs registration.Repository,
	teams team.Repository,
	metrics *Metrics,
	logger *logging.Logger,
) *RegistrationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RegistrationService{
		configs: configs,
		teams:   teams,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// GetConfig returns the config, creating the default row on first read, and closes
// registration if the cap has been reached since the last write.
func (s *RegistrationService) GetConfig(ctx context.Context) (view ConfigView, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.GetConfig")
	defer finishSpan(span, &err)

	now := s.now().UTC()
	cfg, created, err := s.configs.GetOrCreate(ctx, now)
	if err != nil {
		return ConfigView{}, fmt.Errorf("get registration config: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "registration config created with defaults", "config_id", cfg.ID)
	}

	count, err := s.teams.Count(ctx)
	if err != nil {
		return ConfigView{}, fmt.Errorf("count teams: %w", err)
	}

	if _, closes := registration.ReconcileCapacity(cfg, count); closes {
		reconciled, closed, err := s.configs.CloseIfCapacityReached(ctx, now)
		if err != nil {
			return ConfigView{}, fmt.Errorf("close registration at capacity: %w", err)
		}
		if closed {
			s.metrics.observeAutoClose("config_read")
			s.logger.InfoContext(ctx, "registration auto-closed at capacity", "current_teams", count, "max_teams", derefInt(reconciled.MaxTeams))
		}
		cfg = reconciled
	}

	return ConfigView{Config: cfg, CurrentTeams: count, Created: created}, nil
}

// UpdateConfig applies a partial change; capacity is reconciled in the same write.
func (s *RegistrationService) UpdateConfig(ctx context.Context, update registration.Update) (view ConfigView, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.UpdateConfig")
	defer finishSpan(span, &err)

	if update.SetMaxTeams && update.MaxTeams != nil && *update.MaxTeams < 0 {
		return ConfigView{}, fmt.Errorf("%w: maxTeams must not be negative", ErrInvalidInput)
	}

	res, err := s.configs.Update(ctx, update, s.now().UTC())
	if err != nil {
		return ConfigView{}, fmt.Errorf("update registration config: %w", err)
	}

	count, err := s.teams.Count(ctx)
	if err != nil {
		return ConfigView{}, fmt.Errorf("count teams: %w", err)
	}

	s.logger.InfoContext(ctx, "registration config updated",
		"is_registration_open", res.Config.IsRegistrationOpen,
		"max_teams", derefInt(res.Config.MaxTeams),
		"auto_closed", res.AutoClosed,
	)
	if res.AutoClosed {
		s.metrics.observeAutoClose("config_update")
	}

	return ConfigView{Config: res.Config, CurrentTeams: count, Created: res.Created}, nil
}

// CheckStatus is the read-only admission preview. It never creates the config row.
func (s *RegistrationService) CheckStatus(ctx context.Context) (status registration.Status, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.CheckStatus")
	defer finishSpan(span, &err)

	var (
		cfg   registration.Config
		found bool
		count int
	)
	p := pool.New().WithContext(ctx).WithFirstError()
	p.Go(func(ctx context.Context) error {
		var findErr error
		if cfg, found, findErr = s.configs.Find(ctx); findErr != nil {
			return fmt.Errorf("get registration config: %w", findErr)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var countErr error
		if count, countErr = s.teams.Count(ctx); countErr != nil {
			return fmt.Errorf("count teams: %w", countErr)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return registration.Status{}, err
	}
	if !found {
		cfg = registration.DefaultConfig()
	}

	return registration.Preview(cfg, count, s.now().UTC()), nil
}

var stopAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseConfigUpdate reads a PATCH body. Absent keys are no-ops; an explicit null clears
// registrationStopAt or maxTeams. Zone-less timestamps are read as UTC.
func ParseConfigUpdate(body map[string]any) (registration.Update, error) {
	var update registration.Update

	if raw, ok := body["isRegistrationOpen"]; ok {
		open, isBool := raw.(bool)
		if !isBool {
			return registration.Update{}, fmt.Errorf("%w: isRegistrationOpen must be a boolean", ErrInvalidInput)
		}
		update.IsRegistrationOpen = &open
	}

	if raw, ok := body["registrationStopAt"]; ok {
		update.SetStopAt = true
		switch v := raw.(type) {
		case nil:
		case string:
			if strings.TrimSpace(v) != "" {
				stopAt, err := parseStopAt(v)
				if err != nil {
					return registration.Update{}, err
				}
				update.RegistrationStopAt = &stopAt
			}
		default:
			return registration.Update{}, fmt.Errorf("%w: registrationStopAt must be a date string or null", ErrInvalidInput)
		}
	}

	if raw, ok := body["maxTeams"]; ok {
		update.SetMaxTeams = true
		maxTeams, err := parseMaxTeams(raw)
		if err != nil {
			return registration.Update{}, err
		}
		update.MaxTeams = maxTeams
	}

	return update, nil
}

func parseStopAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range stopAtLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: registrationStopAt %q is not a valid date", ErrInvalidInput, raw)
}

func parseMaxTeams(raw any) (*int, error) {
	var n int64
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 {
			return nil, fmt.Errorf("%w: maxTeams must be a whole number", ErrInvalidInput)
		}
		n = int64(v)
	case int:
		n = int64(v)
	case int64:
		n = v
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: maxTeams must be a whole number", ErrInvalidInput)
		}
		n = parsed
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: maxTeams %q is not a number", ErrInvalidInput, v)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("%w: maxTeams must be a number or null", ErrInvalidInput)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: maxTeams must not be negative", ErrInvalidInput)
	}
	out := int(n)
	return &out, nil
}

func derefInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
