package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	registrationmock "github.com/riskibarqy/tournament-registration/internal/mocks/domain/registration"
	teammock "github.com/riskibarqy/tournament-registration/internal/mocks/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

func TestRegistrationService_GetConfigCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	first, err := svc.registration.GetConfig(ctx)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.True(t, first.Config.IsRegistrationOpen)
	assert.Nil(t, first.Config.RegistrationStopAt)
	assert.Nil(t, first.Config.MaxTeams)
	assert.Equal(t, 0, first.CurrentTeams)

	second, err := svc.registration.GetConfig(ctx)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Config.ID, second.Config.ID)
}

func TestRegistrationService_ManualCloseIsVisibleOnRead(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	_, err := svc.registration.UpdateConfig(ctx, registration.Update{IsRegistrationOpen: boolPtr(false)})
	require.NoError(t, err)

	view, err := svc.registration.GetConfig(ctx)
	require.NoError(t, err)
	assert.False(t, view.Config.IsRegistrationOpen)
}

func TestRegistrationService_LoweringCapClosesRegistration(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	for i := 1; i <= 3; i++ {
		_, err := svc.submission.Submit(ctx, userInput(i))
		require.NoError(t, err)
	}

	view, err := svc.registration.UpdateConfig(ctx, registration.Update{SetMaxTeams: true, MaxTeams: intPtr(3)})
	require.NoError(t, err)
	assert.False(t, view.Config.IsRegistrationOpen)
	assert.Equal(t, 3, view.CurrentTeams)

	// Reopening while still at capacity is closed again by the same write.
	view, err = svc.registration.UpdateConfig(ctx, registration.Update{IsRegistrationOpen: boolPtr(true)})
	require.NoError(t, err)
	assert.False(t, view.Config.IsRegistrationOpen)

	view, err = svc.registration.UpdateConfig(ctx, registration.Update{IsRegistrationOpen: boolPtr(true), SetMaxTeams: true, MaxTeams: nil})
	require.NoError(t, err)
	assert.True(t, view.Config.IsRegistrationOpen)
	assert.Nil(t, view.Config.MaxTeams)
}

func TestRegistrationService_UpdateRejectsNegativeCap(t *testing.T) {
	svc := newServices()

	_, err := svc.registration.UpdateConfig(context.Background(), registration.Update{SetMaxTeams: true, MaxTeams: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegistrationService_CheckStatusDoesNotCreateConfig(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	status, err := svc.registration.CheckStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsOpen)
	assert.Equal(t, "Registration is open", status.Message)

	_, found, err := svc.configs.Find(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRegistrationService_GetConfigClosesAtCapacityUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	configs := registrationmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	service := NewRegistrationService(configs, teams, nil, logging.NewNop())
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	open := registration.Config{ID: "cfg-1", IsRegistrationOpen: true, MaxTeams: intPtr(5)}
	closed := open
	closed.IsRegistrationOpen = false

	configs.On("GetOrCreate", ctx, now).Return(open, false, nil).Once()
	teams.On("Count", ctx).Return(5, nil).Once()
	configs.On("CloseIfCapacityReached", ctx, now).Return(closed, true, nil).Once()

	view, err := service.GetConfig(ctx)
	require.NoError(t, err)
	assert.False(t, view.Config.IsRegistrationOpen)
	assert.Equal(t, 5, view.CurrentTeams)
}

func TestRegistrationService_GetConfigStoreFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	configs := registrationmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	service := NewRegistrationService(configs, teams, nil, logging.NewNop())
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	storeErr := errors.New("too many connections")
	configs.On("GetOrCreate", ctx, now).Return(registration.Config{}, false, storeErr).Once()

	_, err := service.GetConfig(ctx)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRegistrationService_CheckStatusCountFailureUsingMockery(t *testing.T) {
	t.Parallel()

	configs := registrationmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	service := NewRegistrationService(configs, teams, nil, logging.NewNop())

	countErr := errors.New("statement timeout")
	configs.On("Find", mock.Anything).Return(registration.DefaultConfig(), true, nil).Once()
	teams.On("Count", mock.Anything).Return(0, countErr).Once()

	_, err := service.CheckStatus(context.Background())
	require.ErrorIs(t, err, countErr)
	assert.Contains(t, err.Error(), "count teams")
}

func TestParseConfigUpdate(t *testing.T) {
	stopAt := time.Date(2026, 6, 1, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		body    map[string]any
		want    registration.Update
		wantErr bool
	}{
		{name: "empty body", body: map[string]any{}, want: registration.Update{}},
		{
			name: "open flag",
			body: map[string]any{"isRegistrationOpen": false},
			want: registration.Update{IsRegistrationOpen: boolPtr(false)},
		},
		{name: "non boolean flag", body: map[string]any{"isRegistrationOpen": "false"}, wantErr: true},
		{
			name: "rfc3339 stop",
			body: map[string]any{"registrationStopAt": "2026-06-01T20:30:00+02:00"},
			want: registration.Update{SetStopAt: true, RegistrationStopAt: &stopAt},
		},
		{
			name: "local datetime stop",
			body: map[string]any{"registrationStopAt": "2026-06-01T18:30"},
			want: registration.Update{SetStopAt: true, RegistrationStopAt: &stopAt},
		},
		{
			name: "null clears stop",
			body: map[string]any{"registrationStopAt": nil},
			want: registration.Update{SetStopAt: true},
		},
		{
			name: "empty string clears stop",
			body: map[string]any{"registrationStopAt": ""},
			want: registration.Update{SetStopAt: true},
		},
		{name: "malformed stop", body: map[string]any{"registrationStopAt": "next friday"}, wantErr: true},
		{name: "numeric stop", body: map[string]any{"registrationStopAt": 12}, wantErr: true},
		{
			name: "json number cap",
			body: map[string]any{"maxTeams": float64(50)},
			want: registration.Update{SetMaxTeams: true, MaxTeams: intPtr(50)},
		},
		{
			name: "decoder number cap",
			body: map[string]any{"maxTeams": json.Number("25")},
			want: registration.Update{SetMaxTeams: true, MaxTeams: intPtr(25)},
		},
		{
			name: "string cap",
			body: map[string]any{"maxTeams": "75"},
			want: registration.Update{SetMaxTeams: true, MaxTeams: intPtr(75)},
		},
		{
			name: "null clears cap",
			body: map[string]any{"maxTeams": nil},
			want: registration.Update{SetMaxTeams: true},
		},
		{name: "fractional cap", body: map[string]any{"maxTeams": 2.5}, wantErr: true},
		{name: "negative cap", body: map[string]any{"maxTeams": float64(-3)}, wantErr: true},
		{name: "boolean cap", body: map[string]any{"maxTeams": true}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseConfigUpdate(tc.body)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
