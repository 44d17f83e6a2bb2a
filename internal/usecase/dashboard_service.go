package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

const (
	dashboardWindow       = 30 * 24 * time.Hour
	dashboardRecentLimit  = 10
	dashboardQueryWorkers = 4
)

// RegistrationDashboard is the admin overview of registration activity.
type RegistrationDashboard struct {
	TotalRegistrations   int
	IsRegistrationOpen   bool
	RegistrationDeadline *time.Time
	MaxTeams             *int
	RegistrationsByDate  []team.DailyCount
	RecentRegistrations  []team.Registration
}

type DashboardService struct {
	configs registration.Repository
	teams   team.Repository
	now     func() time.Time
}

func NewDashboardService(configs registration.Repository, teams team.Repository) *DashboardService {
	return &DashboardService{configs: configs, teams: teams, now: time.Now}
}

// Get runs the four dashboard queries on a small worker pool.
func (s *DashboardService) Get(ctx context.Context) (out RegistrationDashboard, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer finishSpan(span, &err)

	pool, err := ants.NewPool(dashboardQueryWorkers)
	if err != nil {
		return RegistrationDashboard{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		cfg     registration.Config
		found   bool
		errMu   sync.Mutex
		errs    []error
		workers sync.WaitGroup
	)
	since := s.now().UTC().Add(-dashboardWindow)

	tasks := []func() error{
		func() (err error) {
			out.TotalRegistrations, err = s.teams.Count(ctx)
			return wrapIf(err, "count teams")
		},
		func() (err error) {
			cfg, found, err = s.configs.Find(ctx)
			return wrapIf(err, "get registration config")
		},
		func() (err error) {
			out.RegistrationsByDate, err = s.teams.CountByDay(ctx, since)
			return wrapIf(err, "count registrations by day")
		},
		func() (err error) {
			out.RecentRegistrations, err = s.teams.ListRecent(ctx, dashboardRecentLimit)
			return wrapIf(err, "list recent registrations")
		},
	}

	for _, task := range tasks {
		task := task
		workers.Add(1)
		if submitErr := pool.Submit(func() {
			defer workers.Done()
			if taskErr := task(); taskErr != nil {
				errMu.Lock()
				errs = append(errs, taskErr)
				errMu.Unlock()
			}
		}); submitErr != nil {
			workers.Done()
			errMu.Lock()
			errs = append(errs, fmt.Errorf("submit dashboard query: %w", submitErr))
			errMu.Unlock()
		}
	}
	workers.Wait()

	if err := errors.Join(errs...); err != nil {
		return RegistrationDashboard{}, err
	}

	if !found {
		cfg = registration.DefaultConfig()
	}
	out.IsRegistrationOpen = cfg.IsRegistrationOpen
	out.RegistrationDeadline = cfg.RegistrationStopAt
	out.MaxTeams = cfg.MaxTeams
	return out, nil
}

func wrapIf(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
