package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/formconfig"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

// FormConfigService manages the extra fields shown on the registration form.
type FormConfigService struct {
	repo   formconfig.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewFormConfigService(repo formconfig.Repository, logger *logging.Logger) *FormConfigService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FormConfigService{repo: repo, logger: logger, now: time.Now}
}

// Get reports found=false until an admin saves a field list.
func (s *FormConfigService) Get(ctx context.Context) (cfg formconfig.Config, found bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormConfigService.Get")
	defer finishSpan(span, &err)

	cfg, found, err = s.repo.Find(ctx)
	if err != nil {
		return formconfig.Config{}, false, fmt.Errorf("get form config: %w", err)
	}
	return cfg, found, nil
}

// Save replaces the whole field list.
func (s *FormConfigService) Save(ctx context.Context, fields []formconfig.Field) (cfg formconfig.Config, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormConfigService.Save")
	defer finishSpan(span, &err)

	fields = formconfig.Normalize(fields)
	if err := formconfig.Validate(fields); err != nil {
		return formconfig.Config{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if _, err := formconfig.Encode(fields); err != nil {
		return formconfig.Config{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	cfg, err = s.repo.Save(ctx, fields, s.now().UTC())
	if err != nil {
		return formconfig.Config{}, fmt.Errorf("save form config: %w", err)
	}
	s.logger.InfoContext(ctx, "form config saved", "fields", len(cfg.Fields))
	return cfg, nil
}
