package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

// TeamListing is the public team list with slot numbering.
type TeamListing struct {
	Teams        []team.SlotView
	TotalTeams   int
	TotalMatches int
}

// AdminTeam is a registration as the admin panel sees it.
type AdminTeam struct {
	team.SlotView
	IsEnabled bool
}

// TeamPatch is an admin edit. Nil fields keep the stored value.
type TeamPatch struct {
	TeamName           *string
	IGLName            *string
	Player1            *string
	PlayerID1          *string
	Player2            *string
	PlayerID2          *string
	Player3            *string
	PlayerID3          *string
	Player4            *string
	PlayerID4          *string
	IGLMail            *string
	IGLAlternateMail   *string
	IGLNumber          *string
	IGLAlternateNumber *string
}

func (p TeamPatch) apply(f team.Form) team.Form {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&f.TeamName, p.TeamName)
	set(&f.IGLName, p.IGLName)
	set(&f.Player1, p.Player1)
	set(&f.PlayerID1, p.PlayerID1)
	set(&f.Player2, p.Player2)
	set(&f.PlayerID2, p.PlayerID2)
	set(&f.Player3, p.Player3)
	set(&f.PlayerID3, p.PlayerID3)
	set(&f.Player4, p.Player4)
	set(&f.PlayerID4, p.PlayerID4)
	set(&f.IGLMail, p.IGLMail)
	set(&f.IGLAlternateMail, p.IGLAlternateMail)
	set(&f.IGLNumber, p.IGLNumber)
	set(&f.IGLAlternateNumber, p.IGLAlternateNumber)
	return f
}

type TeamService struct {
	teams     team.Repository
	matchSize int
	logger    *logging.Logger
	now       func() time.Time

	listGroup singleflight.Group
}

func NewTeamService(teams team.Repository, matchSize int, logger *logging.Logger) *TeamService {
	if matchSize < 1 {
		matchSize = team.DefaultMatchSize
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		teams:     teams,
		matchSize: matchSize,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TeamService) MatchSize() int {
	return s.matchSize
}

// ListTeams returns every team in registration order. Concurrent callers share one scan.
func (s *TeamService) ListTeams(ctx context.Context) (out TeamListing, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer finishSpan(span, &err)

	views, err := s.slotViews(ctx)
	if err != nil {
		return TeamListing{}, err
	}
	return TeamListing{
		Teams:        views,
		TotalTeams:   len(views),
		TotalMatches: team.MatchCount(len(views), s.matchSize),
	}, nil
}

// slotViews returns a private copy of the shared scan result. The scan runs detached from the
// caller that started it, so one caller giving up does not fail the others waiting on it.
func (s *TeamService) slotViews(ctx context.Context) ([]team.SlotView, error) {
	scanCtx := context.WithoutCancel(ctx)
	ch := s.listGroup.DoChan("teams", func() (any, error) {
		regs, err := s.teams.ListByCreation(scanCtx)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		return team.AssignSlots(regs, s.matchSize), nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	shared := res.Val.([]team.SlotView)
	views := make([]team.SlotView, len(shared))
	copy(views, shared)
	return views, nil
}

// ListForAdmin returns every team newest first with its enabled flag. Teams without a status
// row are enabled.
func (s *TeamService) ListForAdmin(ctx context.Context) (out []AdminTeam, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListForAdmin")
	defer finishSpan(span, &err)

	views, err := s.slotViews(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.teams.ListStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team statuses: %w", err)
	}
	enabled := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		enabled[st.TeamID] = st.IsEnabled
	}

	newest := team.NewestFirst(views)
	out = make([]AdminTeam, 0, len(newest))
	for _, v := range newest {
		isEnabled, ok := enabled[v.ID]
		if !ok {
			isEnabled = true
		}
		out = append(out, AdminTeam{SlotView: v, IsEnabled: isEnabled})
	}
	return out, nil
}

// UpdateTeam applies an admin edit after validating the merged form with the submission rules.
func (s *TeamService) UpdateTeam(ctx context.Context, id string, patch TeamPatch) (reg team.Registration, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateTeam")
	defer finishSpan(span, &err)

	id = strings.TrimSpace(id)
	if id == "" {
		return team.Registration{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	current, found, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return team.Registration{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Registration{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}

	form := patch.apply(team.FormFromRegistration(current)).Normalize()
	if err := form.Validate(); err != nil {
		return team.Registration{}, err
	}
	updated := form.ApplyTo(current)
	updated.UpdatedAt = s.now().UTC()

	ok, err := s.teams.Update(ctx, updated)
	if err != nil {
		return team.Registration{}, fmt.Errorf("update team: %w", err)
	}
	if !ok {
		return team.Registration{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}
	s.logger.InfoContext(ctx, "team registration updated", "team_id", id)
	return updated, nil
}

// DeleteTeam removes a registration. Every later team's slot numbering shifts down.
func (s *TeamService) DeleteTeam(ctx context.Context, id string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeleteTeam")
	defer finishSpan(span, &err)

	id = strings.TrimSpace(id)
	ok, err := s.teams.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}
	s.logger.InfoContext(ctx, "team registration deleted", "team_id", id)
	return nil
}

func (s *TeamService) SetEnabled(ctx context.Context, id string, enabled bool) (st team.Status, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SetEnabled")
	defer finishSpan(span, &err)

	id = strings.TrimSpace(id)
	_, found, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return team.Status{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Status{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}

	st = team.Status{TeamID: id, IsEnabled: enabled, UpdatedAt: s.now().UTC()}
	if err := s.teams.SetStatus(ctx, st); err != nil {
		return team.Status{}, fmt.Errorf("set team status: %w", err)
	}
	return st, nil
}
