package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
)

type ScheduleRepository struct {
	store *Store
}

func NewScheduleRepository(store *Store) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

func (r *ScheduleRepository) List(_ context.Context) ([]schedule.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := append([]schedule.Schedule(nil), r.store.schedules...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, id string) (schedule.Schedule, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.schedules {
		if item.ID == id {
			return item, true, nil
		}
	}
	return schedule.Schedule{}, false, nil
}

func (r *ScheduleRepository) Create(_ context.Context, s schedule.Schedule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.schedules = append(r.store.schedules, s)
	return nil
}

func (r *ScheduleRepository) Update(_ context.Context, s schedule.Schedule) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.schedules {
		if r.store.schedules[i].ID == s.ID {
			r.store.schedules[i] = s
			return true, nil
		}
	}
	return false, nil
}

func (r *ScheduleRepository) Delete(_ context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.schedules {
		if r.store.schedules[i].ID == id {
			r.store.schedules = append(r.store.schedules[:i], r.store.schedules[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
