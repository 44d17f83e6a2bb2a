package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
)

type RegistrationConfigRepository struct {
	store *Store
}

func NewRegistrationConfigRepository(store *Store) *RegistrationConfigRepository {
	return &RegistrationConfigRepository{store: store}
}

func (r *RegistrationConfigRepository) Find(_ context.Context) (registration.Config, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if r.store.config == nil {
		return registration.Config{}, false, nil
	}
	return r.store.config.Clone(), true, nil
}

func (r *RegistrationConfigRepository) GetOrCreate(_ context.Context, now time.Time) (registration.Config, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cfg, created, err := r.store.configLocked(now)
	if err != nil {
		return registration.Config{}, false, err
	}
	return cfg.Clone(), created, nil
}

func (r *RegistrationConfigRepository) Update(_ context.Context, update registration.Update, now time.Time) (registration.UpdateResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cfg, created, err := r.store.configLocked(now)
	if err != nil {
		return registration.UpdateResult{}, err
	}

	cfg = update.Apply(cfg)
	cfg.UpdatedAt = now
	cfg, closed := registration.ReconcileCapacity(cfg, len(r.store.teams))
	r.store.config = &cfg

	return registration.UpdateResult{Config: cfg.Clone(), Created: created, AutoClosed: closed}, nil
}

func (r *RegistrationConfigRepository) CloseIfCapacityReached(_ context.Context, now time.Time) (registration.Config, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.config == nil {
		return registration.Config{}, false, nil
	}
	cfg, closed := registration.ReconcileCapacity(*r.store.config, len(r.store.teams))
	if closed {
		cfg.UpdatedAt = now
		r.store.config = &cfg
	}
	return cfg.Clone(), closed, nil
}

// configLocked returns the stored config, creating the default row first. Caller holds mu.
func (s *Store) configLocked(now time.Time) (registration.Config, bool, error) {
	if s.config != nil {
		return *s.config, false, nil
	}
	configID, err := s.ids.NewID()
	if err != nil {
		return registration.Config{}, false, fmt.Errorf("generate config id: %w", err)
	}
	cfg := registration.DefaultConfig()
	cfg.ID = configID
	cfg.UpdatedAt = now
	s.config = &cfg
	return cfg, true, nil
}
