package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	teammock "github.com/riskibarqy/tournament-registration/internal/mocks/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

func submitMany(t *testing.T, svc *services, n int) []team.Registration {
	t.Helper()
	out := make([]team.Registration, 0, n)
	for i := 1; i <= n; i++ {
		res, err := svc.submission.Submit(context.Background(), userInput(i))
		require.NoError(t, err)
		out = append(out, res.Registration)
	}
	return out
}

func TestTeamService_ListTeamsNumbersMatches(t *testing.T) {
	svc := newServices()
	submitMany(t, svc, 26)

	listing, err := svc.teamService.ListTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 26, listing.TotalTeams)
	assert.Equal(t, 2, listing.TotalMatches)
	require.Len(t, listing.Teams, 26)

	for i := 0; i < 25; i++ {
		assert.Equal(t, 1, listing.Teams[i].MatchNumber)
		assert.Equal(t, i+1, listing.Teams[i].PositionInMatch)
	}
	assert.Equal(t, "Team 1", listing.Teams[0].TeamName)
	assert.Equal(t, 2, listing.Teams[25].MatchNumber)
	assert.Equal(t, 1, listing.Teams[25].PositionInMatch)
}

func TestTeamService_DeleteShiftsLaterSlots(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	regs := submitMany(t, svc, 26)

	require.NoError(t, svc.teamService.DeleteTeam(ctx, regs[0].ID))

	listing, err := svc.teamService.ListTeams(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, listing.TotalTeams)
	assert.Equal(t, 1, listing.TotalMatches)
	last := listing.Teams[len(listing.Teams)-1]
	assert.Equal(t, regs[25].ID, last.ID)
	assert.Equal(t, 1, last.MatchNumber)
	assert.Equal(t, 25, last.PositionInMatch)

	err = svc.teamService.DeleteTeam(ctx, regs[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeamService_ListForAdminNewestFirstWithStatus(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	regs := submitMany(t, svc, 3)

	_, err := svc.teamService.SetEnabled(ctx, regs[1].ID, false)
	require.NoError(t, err)

	got, err := svc.teamService.ListForAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, regs[2].ID, got[0].ID)
	assert.Equal(t, 3, got[0].PositionInMatch)
	assert.Equal(t, 25, got[0].Slot)
	assert.True(t, got[0].IsEnabled)
	assert.False(t, got[1].IsEnabled)
	assert.True(t, got[2].IsEnabled)

	_, err = svc.teamService.SetEnabled(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeamService_UpdateTeamRevalidates(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	regs := submitMany(t, svc, 2)

	name := "  Renamed Squad "
	updated, err := svc.teamService.UpdateTeam(ctx, regs[0].ID, TeamPatch{TeamName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Squad", updated.TeamName)
	assert.Equal(t, regs[0].UserID, updated.UserID)
	assert.Equal(t, regs[0].CreatedAt, updated.CreatedAt)

	badID := "42"
	_, err = svc.teamService.UpdateTeam(ctx, regs[0].ID, TeamPatch{PlayerID2: &badID})
	var verr *team.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "playerId2", verr.Fields[0].Field)

	clash := regs[1].IGLMail
	_, err = svc.teamService.UpdateTeam(ctx, regs[0].ID, TeamPatch{IGLMail: &clash})
	assert.ErrorIs(t, err, team.ErrUniquenessViolation)

	_, err = svc.teamService.UpdateTeam(ctx, "missing", TeamPatch{TeamName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeamService_ListFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teams := teammock.NewRepository(t)
	service := NewTeamService(teams, 0, logging.NewNop())

	teams.On("ListByCreation", mock.Anything).Return(nil, errors.New("canceling statement")).Once()

	_, err := service.ListTeams(ctx)
	if err == nil || err.Error() != "list teams: canceling statement" {
		t.Fatalf("unexpected error: %v", err)
	}
}

// blockingTeams holds ListByCreation open until release is closed.
type blockingTeams struct {
	team.Repository
	once    sync.Once
	started chan struct{}
	release chan struct{}
	scanErr chan error
}

func (b *blockingTeams) ListByCreation(ctx context.Context) ([]team.Registration, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	select {
	case b.scanErr <- ctx.Err():
	default:
	}
	return nil, ctx.Err()
}

func TestTeamService_CancelledCallerDoesNotFailSharedScan(t *testing.T) {
	teams := &blockingTeams{
		started: make(chan struct{}),
		release: make(chan struct{}),
		scanErr: make(chan error, 1),
	}
	service := NewTeamService(teams, 0, logging.NewNop())

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := service.ListTeams(firstCtx)
		firstErr <- err
	}()
	<-teams.started

	cancel()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatalf("cancelled caller kept waiting on the shared scan")
	}

	secondErr := make(chan error, 1)
	go func() {
		_, err := service.ListTeams(context.Background())
		secondErr <- err
	}()
	close(teams.release)

	require.NoError(t, <-teams.scanErr, "scan must not inherit the first caller's cancellation")
	select {
	case err := <-secondErr:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("second caller never finished")
	}
}
