package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
)

type CreateScheduleInput struct {
	Date string
	Time string
	Maps string
	Type string
}

type ScheduleService struct {
	repo  schedule.Repository
	idGen idgen.Generator
	now   func() time.Time
}

func NewScheduleService(repo schedule.Repository, idGen idgen.Generator) *ScheduleService {
	return &ScheduleService{repo: repo, idGen: idGen, now: time.Now}
}

func (s *ScheduleService) List(ctx context.Context) (out []schedule.Schedule, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.List")
	defer finishSpan(span, &err)

	out, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return out, nil
}

func (s *ScheduleService) Create(ctx context.Context, input CreateScheduleInput) (item schedule.Schedule, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Create")
	defer finishSpan(span, &err)

	item = schedule.Schedule{
		Date: strings.TrimSpace(input.Date),
		Time: strings.TrimSpace(input.Time),
		Maps: strings.TrimSpace(input.Maps),
		Type: strings.TrimSpace(input.Type),
	}
	if item.Date == "" || item.Time == "" || item.Maps == "" || item.Type == "" {
		return schedule.Schedule{}, fmt.Errorf("%w: date, time, maps and type are required", ErrInvalidInput)
	}

	item.ID, err = s.idGen.NewID()
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("generate schedule id: %w", err)
	}
	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		return schedule.Schedule{}, fmt.Errorf("create schedule: %w", err)
	}
	return item, nil
}

func (s *ScheduleService) Update(ctx context.Context, id string, patch schedule.Patch) (item schedule.Schedule, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Update")
	defer finishSpan(span, &err)

	id = strings.TrimSpace(id)
	current, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}
	if !found {
		return schedule.Schedule{}, fmt.Errorf("%w: schedule=%s", ErrNotFound, id)
	}

	item = patch.Apply(current)
	item.UpdatedAt = s.now().UTC()
	ok, err := s.repo.Update(ctx, item)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("update schedule: %w", err)
	}
	if !ok {
		return schedule.Schedule{}, fmt.Errorf("%w: schedule=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Delete")
	defer finishSpan(span, &err)

	id = strings.TrimSpace(id)
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: schedule=%s", ErrNotFound, id)
	}
	return nil
}
