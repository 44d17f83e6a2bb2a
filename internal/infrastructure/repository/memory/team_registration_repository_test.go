package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newRepos() (*RegistrationConfigRepository, *TeamRegistrationRepository) {
	store := NewStore(&id.Sequence{Prefix: "cfg"})
	return NewRegistrationConfigRepository(store), NewTeamRegistrationRepository(store)
}

func sampleTeam(n int) team.Registration {
	return team.Registration{
		ID:        fmt.Sprintf("t-%d", n),
		UserID:    fmt.Sprintf("u-%d", n),
		TeamName:  fmt.Sprintf("Team %d", n),
		IGLMail:   fmt.Sprintf("igl%d@example.com", n),
		IGLNumber: fmt.Sprintf("98765%05d", n),
		CreatedAt: testNow.Add(time.Duration(n) * time.Second),
	}
}

func gate(now time.Time) team.AdmissionFunc {
	return func(state team.AdmissionState) error {
		return registration.CheckAdmission(state.Config, state.CurrentTeams, now).Err()
	}
}

func TestAdmit_ConcurrentSubmittersNeverOvershootCap(t *testing.T) {
	ctx := context.Background()
	configs, teams := newRepos()

	maxTeams := 10
	_, err := configs.Update(ctx, registration.Update{SetMaxTeams: true, MaxTeams: &maxTeams}, testNow)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		denied   int
		closures int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			res, err := teams.Admit(ctx, sampleTeam(n), gate(testNow), testNow)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
				if res.AutoClosed {
					closures++
				}
			case errors.Is(err, registration.ErrAdmissionDenied):
				denied++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, admitted)
	assert.Equal(t, 40, denied)
	assert.Equal(t, 1, closures, "auto-close must fire exactly once")

	cfg, found, err := configs.Find(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, cfg.IsRegistrationOpen)
}

func TestAdmit_EnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	_, teams := newRepos()

	_, err := teams.Admit(ctx, sampleTeam(1), nil, testNow)
	require.NoError(t, err)

	sameMail := sampleTeam(2)
	sameMail.IGLMail = sampleTeam(1).IGLMail
	_, err = teams.Admit(ctx, sameMail, nil, testNow)
	var uniq *team.UniquenessError
	require.True(t, errors.As(err, &uniq))
	assert.Equal(t, "iglMail", uniq.Field)

	sameUser := sampleTeam(3)
	sameUser.UserID = "u-1"
	_, err = teams.Admit(ctx, sameUser, nil, testNow)
	assert.True(t, errors.Is(err, team.ErrDuplicateSubmission))

	count, err := teams.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAdmit_PassesExistingRecordToCallback(t *testing.T) {
	ctx := context.Background()
	_, teams := newRepos()

	guest := sampleTeam(1)
	guest.UserID = ""
	guest.GuestUserID = "g-1"
	_, err := teams.Admit(ctx, guest, nil, testNow)
	require.NoError(t, err)

	retry := sampleTeam(2)
	retry.UserID = ""
	retry.GuestUserID = "g-1"
	var seen team.AdmissionState
	_, err = teams.Admit(ctx, retry, func(state team.AdmissionState) error {
		seen = state
		return team.CheckDuplicate(team.Submitter{GuestUserID: "g-1"}, state.Existing)
	}, testNow)

	var dup *team.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.True(t, dup.Guest)
	require.NotNil(t, seen.Existing)
	assert.Equal(t, "t-1", seen.Existing.ID)
	assert.Equal(t, 1, seen.CurrentTeams)
	assert.True(t, seen.Config.IsRegistrationOpen)
}

func TestClaimGuest(t *testing.T) {
	ctx := context.Background()
	_, teams := newRepos()

	guest := sampleTeam(1)
	guest.UserID = ""
	guest.GuestUserID = "g-1"
	_, err := teams.Admit(ctx, guest, nil, testNow)
	require.NoError(t, err)

	claimed, err := teams.ClaimGuest(ctx, "g-1", "u-9", testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, claimed)

	got, found, err := teams.GetByUserID(ctx, "u-9")
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, got.GuestUserID)
	assert.Equal(t, testNow.Add(time.Minute), got.UpdatedAt)

	claimed, err = teams.ClaimGuest(ctx, "g-1", "u-9", testNow)
	require.NoError(t, err)
	assert.Zero(t, claimed)
}

func TestListingAndDailyCounts(t *testing.T) {
	ctx := context.Background()
	_, teams := newRepos()

	for i, offset := range []time.Duration{48 * time.Hour, 0, 25 * time.Hour, time.Hour} {
		reg := sampleTeam(i)
		reg.CreatedAt = testNow.Add(-offset)
		_, err := teams.Admit(ctx, reg, nil, testNow)
		require.NoError(t, err)
	}

	ordered, err := teams.ListByCreation(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(ordered))
	for _, item := range ordered {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"t-0", "t-2", "t-3", "t-1"}, ids)

	recent, err := teams.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "t-1", recent[0].ID)
	assert.Equal(t, "t-3", recent[1].ID)

	days, err := teams.CountByDay(ctx, testNow.Add(-30*time.Hour))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, 2, days[0].Count)
	assert.Equal(t, 1, days[1].Count)

	deleted, err := teams.Delete(ctx, "t-2")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = teams.Delete(ctx, "t-2")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestConfigRepository_UpdateReconcilesAndCreates(t *testing.T) {
	ctx := context.Background()
	configs, teams := newRepos()

	_, found, err := configs.Find(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	for i := 0; i < 3; i++ {
		_, err := teams.Admit(ctx, sampleTeam(i), nil, testNow)
		require.NoError(t, err)
	}

	maxTeams := 3
	res, err := configs.Update(ctx, registration.Update{SetMaxTeams: true, MaxTeams: &maxTeams}, testNow)
	require.NoError(t, err)
	assert.False(t, res.Created, "admissions created the row already")
	assert.True(t, res.AutoClosed)
	assert.False(t, res.Config.IsRegistrationOpen)
	assert.Equal(t, "cfg-1", res.Config.ID)

	_, closed, err := configs.CloseIfCapacityReached(ctx, testNow)
	require.NoError(t, err)
	assert.False(t, closed, "closing is idempotent")
}
