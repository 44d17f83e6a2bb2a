package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	registrationmock "github.com/riskibarqy/tournament-registration/internal/mocks/domain/registration"
	teammock "github.com/riskibarqy/tournament-registration/internal/mocks/domain/team"
)

func TestDashboardService_Get(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	submitMany(t, svc, 12)

	_, err := svc.registration.UpdateConfig(ctx, registration.Update{SetMaxTeams: true, MaxTeams: intPtr(40)})
	require.NoError(t, err)

	dashboard := NewDashboardService(svc.configs, svc.teams)
	dashboard.now = func() time.Time { return fixedNow.Add(time.Hour) }

	got, err := dashboard.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, got.TotalRegistrations)
	assert.True(t, got.IsRegistrationOpen)
	require.NotNil(t, got.MaxTeams)
	assert.Equal(t, 40, *got.MaxTeams)
	require.Len(t, got.RegistrationsByDate, 1)
	assert.Equal(t, 12, got.RegistrationsByDate[0].Count)
	require.Len(t, got.RecentRegistrations, 10)
	assert.Equal(t, "Team 12", got.RecentRegistrations[0].TeamName)
}

func TestDashboardService_JoinsQueryErrorsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	configs := registrationmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	service := NewDashboardService(configs, teams)

	countErr := errors.New("count timeout")
	teams.On("Count", ctx).Return(0, countErr).Once()
	configs.On("Find", ctx).Return(registration.DefaultConfig(), true, nil).Once()
	teams.On("CountByDay", ctx, mock.Anything).Return([]team.DailyCount{}, nil).Once()
	teams.On("ListRecent", ctx, 10).Return(nil, errors.New("recent timeout")).Once()

	_, err := service.Get(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, countErr)
	assert.Contains(t, err.Error(), "list recent registrations: recent timeout")
}
