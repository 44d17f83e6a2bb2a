package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/tournament-registration/internal/platform/cache"
)

type countingScheduleRepo struct {
	schedule.Repository
	lists int
}

func (r *countingScheduleRepo) List(ctx context.Context) ([]schedule.Schedule, error) {
	r.lists++
	return r.Repository.List(ctx)
}

func TestScheduleRepository_CachesListUntilWrite(t *testing.T) {
	ctx := context.Background()
	next := &countingScheduleRepo{Repository: memory.NewScheduleRepository(memory.NewStore(nil))}
	repo := NewScheduleRepository(next, basecache.NewStore[[]schedule.Schedule](time.Minute))

	if err := repo.Create(ctx, schedule.Schedule{ID: "s-1", Date: "2026-03-02", Time: "18:00", Maps: "Erangel", Type: "Squad"}); err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list schedules: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("unexpected schedules: %+v", items)
		}
	}
	if next.lists != 1 {
		t.Fatalf("expected one backing list call, got %d", next.lists)
	}

	if _, err := repo.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("delete schedule: %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(items) != 0 || next.lists != 2 {
		t.Fatalf("cache not invalidated: items=%d lists=%d", len(items), next.lists)
	}
}

func TestScheduleRepository_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewScheduleRepository(memory.NewScheduleRepository(memory.NewStore(nil)), basecache.NewStore[[]schedule.Schedule](time.Minute))
	if err := repo.Create(ctx, schedule.Schedule{ID: "s-1", Date: "2026-03-02", Time: "18:00", Maps: "Erangel", Type: "Squad"}); err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list schedules: %v", err)
	}
	first[0].Maps = "mutated"

	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list schedules: %v", err)
	}
	if second[0].Maps != "Erangel" {
		t.Fatalf("cached list was mutated through a returned slice: %+v", second[0])
	}
}
