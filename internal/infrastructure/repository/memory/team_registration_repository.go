package memory

import (
	"context"
	"sort"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

type TeamRegistrationRepository struct {
	store *Store
}

func NewTeamRegistrationRepository(store *Store) *TeamRegistrationRepository {
	return &TeamRegistrationRepository{store: store}
}

func (r *TeamRegistrationRepository) Admit(_ context.Context, reg team.Registration, admit team.AdmissionFunc, now time.Time) (team.AdmitResult, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, _, err := s.configLocked(now)
	if err != nil {
		return team.AdmitResult{}, err
	}

	state := team.AdmissionState{
		Config:       cfg.Clone(),
		CurrentTeams: len(s.teams),
		Existing:     s.findBySubmitterLocked(team.Submitter{UserID: reg.UserID, GuestUserID: reg.GuestUserID}),
	}
	if admit != nil {
		if err := admit(state); err != nil {
			return team.AdmitResult{}, err
		}
	}

	if err := s.checkUniqueLocked(reg); err != nil {
		return team.AdmitResult{}, err
	}

	s.teams = append(s.teams, reg)
	count := len(s.teams)

	cfg, closed := registration.ReconcileCapacity(cfg, count)
	if closed {
		cfg.UpdatedAt = now
		s.config = &cfg
	}

	return team.AdmitResult{
		Registration: reg,
		Config:       cfg.Clone(),
		CurrentTeams: count,
		AutoClosed:   closed,
	}, nil
}

func (r *TeamRegistrationRepository) GetByID(_ context.Context, id string) (team.Registration, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if i := r.store.indexLocked(id); i >= 0 {
		return r.store.teams[i], true, nil
	}
	return team.Registration{}, false, nil
}

func (r *TeamRegistrationRepository) GetByUserID(_ context.Context, userID string) (team.Registration, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if userID == "" {
		return team.Registration{}, false, nil
	}
	for _, item := range r.store.teams {
		if item.UserID == userID {
			return item, true, nil
		}
	}
	return team.Registration{}, false, nil
}

func (r *TeamRegistrationRepository) ListByCreation(_ context.Context) ([]team.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.byCreationLocked(), nil
}

func (r *TeamRegistrationRepository) ListRecent(_ context.Context, limit int) ([]team.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ordered := r.store.byCreationLocked()
	out := make([]team.Registration, 0, len(ordered))
	for i := len(ordered) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, ordered[i])
	}
	return out, nil
}

func (r *TeamRegistrationRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.store.teams), nil
}

func (r *TeamRegistrationRepository) CountByDay(_ context.Context, since time.Time) ([]team.DailyCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[time.Time]int)
	for _, item := range r.store.teams {
		if item.CreatedAt.Before(since) {
			continue
		}
		created := item.CreatedAt.UTC()
		day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
		counts[day]++
	}

	out := make([]team.DailyCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, team.DailyCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *TeamRegistrationRepository) Update(_ context.Context, reg team.Registration) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.store.indexLocked(reg.ID)
	if i < 0 {
		return false, nil
	}
	if err := r.store.checkUniqueLocked(reg); err != nil {
		return false, err
	}
	r.store.teams[i] = reg
	return true, nil
}

func (r *TeamRegistrationRepository) Delete(_ context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.store.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	r.store.teams = append(r.store.teams[:i], r.store.teams[i+1:]...)
	delete(r.store.statuses, id)
	return true, nil
}

func (r *TeamRegistrationRepository) ClaimGuest(_ context.Context, guestUserID, userID string, now time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if guestUserID == "" || userID == "" {
		return 0, nil
	}

	owned := false
	claimable := 0
	for _, item := range r.store.teams {
		if item.UserID == userID {
			owned = true
		}
		if item.GuestUserID == guestUserID {
			claimable++
		}
	}
	if claimable == 0 {
		return 0, nil
	}
	if owned || claimable > 1 {
		return 0, &team.DuplicateError{}
	}

	claimed := 0
	for i := range r.store.teams {
		if r.store.teams[i].GuestUserID != guestUserID {
			continue
		}
		r.store.teams[i].UserID = userID
		r.store.teams[i].GuestUserID = ""
		r.store.teams[i].UpdatedAt = now
		claimed++
	}
	return claimed, nil
}

func (r *TeamRegistrationRepository) SetStatus(_ context.Context, status team.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.statuses[status.TeamID] = status
	return nil
}

func (r *TeamRegistrationRepository) ListStatuses(_ context.Context) ([]team.Status, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Status, 0, len(r.store.statuses))
	for _, status := range r.store.statuses {
		out = append(out, status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (s *Store) indexLocked(id string) int {
	for i, item := range s.teams {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) byCreationLocked() []team.Registration {
	out := make([]team.Registration, len(s.teams))
	copy(out, s.teams)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) findBySubmitterLocked(sub team.Submitter) *team.Registration {
	sub = sub.Normalized()
	for i := range s.teams {
		item := s.teams[i]
		if (sub.UserID != "" && item.UserID == sub.UserID) ||
			(sub.UserID == "" && sub.GuestUserID != "" && item.GuestUserID == sub.GuestUserID) {
			return &item
		}
	}
	return nil
}

// checkUniqueLocked mirrors the unique constraints of the team_registrations table.
// Empty optional values never collide.
func (s *Store) checkUniqueLocked(reg team.Registration) error {
	for _, item := range s.teams {
		if item.ID == reg.ID {
			continue
		}
		switch {
		case reg.UserID != "" && item.UserID == reg.UserID:
			return &team.DuplicateError{}
		case reg.GuestUserID != "" && item.GuestUserID == reg.GuestUserID:
			return &team.DuplicateError{Guest: true}
		case reg.IGLMail != "" && item.IGLMail == reg.IGLMail:
			return &team.UniquenessError{Field: "iglMail"}
		case reg.IGLNumber != "" && item.IGLNumber == reg.IGLNumber:
			return &team.UniquenessError{Field: "iglNumber"}
		}
	}
	return nil
}
