package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
	basecache "github.com/riskibarqy/tournament-registration/internal/platform/cache"
)

const scheduleListKey = "schedule:list"

// ScheduleRepository caches the public schedule list. Writes through this decorator drop it.
type ScheduleRepository struct {
	schedule.Repository
	lists *basecache.Store[[]schedule.Schedule]
}

func NewScheduleRepository(next schedule.Repository, lists *basecache.Store[[]schedule.Schedule]) *ScheduleRepository {
	return &ScheduleRepository{Repository: next, lists: lists}
}

// List hands out a copy so callers cannot mutate the cached slice.
func (r *ScheduleRepository) List(ctx context.Context) ([]schedule.Schedule, error) {
	items, err := r.lists.Load(ctx, scheduleListKey, r.Repository.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *ScheduleRepository) Create(ctx context.Context, s schedule.Schedule) error {
	defer r.lists.Invalidate(scheduleListKey)
	return r.Repository.Create(ctx, s)
}

func (r *ScheduleRepository) Update(ctx context.Context, s schedule.Schedule) (bool, error) {
	defer r.lists.Invalidate(scheduleListKey)
	return r.Repository.Update(ctx, s)
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.lists.Invalidate(scheduleListKey)
	return r.Repository.Delete(ctx, id)
}
