package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/formconfig"
)

type FormConfigRepository struct {
	store *Store
}

func NewFormConfigRepository(store *Store) *FormConfigRepository {
	return &FormConfigRepository{store: store}
}

func (r *FormConfigRepository) Find(_ context.Context) (formconfig.Config, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if r.store.formConfig == nil {
		return formconfig.Config{}, false, nil
	}
	return r.store.formConfig.Clone(), true, nil
}

func (r *FormConfigRepository) Save(_ context.Context, fields []formconfig.Field, now time.Time) (formconfig.Config, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cfg := formconfig.Config{Fields: fields, UpdatedAt: now}
	if r.store.formConfig != nil {
		cfg.ID = r.store.formConfig.ID
	} else {
		configID, err := r.store.ids.NewID()
		if err != nil {
			return formconfig.Config{}, fmt.Errorf("generate form config id: %w", err)
		}
		cfg.ID = configID
	}
	cfg = cfg.Clone()
	r.store.formConfig = &cfg
	return cfg.Clone(), nil
}
