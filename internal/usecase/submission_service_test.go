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
	"github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

func TestSubmissionService_CapacityClosesRegistration(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	_, err := svc.registration.UpdateConfig(ctx, registration.Update{SetMaxTeams: true, MaxTeams: intPtr(2)})
	require.NoError(t, err)

	first, err := svc.submission.Submit(ctx, userInput(1))
	require.NoError(t, err)
	assert.False(t, first.AutoClosed)
	assert.Equal(t, 1, first.CurrentTeams)

	second, err := svc.submission.Submit(ctx, userInput(2))
	require.NoError(t, err)
	assert.True(t, second.AutoClosed)
	assert.False(t, second.Config.IsRegistrationOpen)
	assert.Equal(t, 2, second.CurrentTeams)

	_, err = svc.submission.Submit(ctx, userInput(3))
	if !errors.Is(err, registration.ErrAdmissionDenied) {
		t.Fatalf("expected admission denied, got %v", err)
	}
	var denied *registration.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, registration.ReasonCapacityReached, denied.Reason)

	count, err := svc.teams.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	view, err := svc.registration.GetConfig(ctx)
	require.NoError(t, err)
	assert.False(t, view.Config.IsRegistrationOpen)
	assert.Equal(t, 2, view.CurrentTeams)
}

func TestSubmissionService_DuplicateUserRejected(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	first, err := svc.submission.Submit(ctx, userInput(1))
	require.NoError(t, err)

	again := userInput(2)
	again.Submitter.UserID = "user-1"
	_, err = svc.submission.Submit(ctx, again)

	var dup *team.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	assert.False(t, dup.Guest)
	assert.Equal(t, team.MessageAlreadySubmitted, dup.Message())

	stored, found, err := svc.teams.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first.Registration.ID, stored.ID)
	assert.Equal(t, "Team 1", stored.TeamName)
}

func TestSubmissionService_DuplicateGuestRejected(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	guest := team.Submitter{GuestUserID: "guest-abc"}
	_, err := svc.submission.Submit(ctx, SubmitInput{Form: validForm(1), Submitter: guest})
	require.NoError(t, err)

	_, err = svc.submission.Submit(ctx, SubmitInput{Form: validForm(2), Submitter: guest})
	var dup *team.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.True(t, dup.Guest)
	assert.Equal(t, team.MessageAlreadySubmittedAsGuest, dup.Message())
}

func TestSubmissionService_MailCollisionIsUniquenessViolation(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	_, err := svc.submission.Submit(ctx, userInput(1))
	require.NoError(t, err)

	clash := userInput(2)
	clash.Form.IGLMail = "  igl1@example.com "
	_, err = svc.submission.Submit(ctx, clash)
	if !errors.Is(err, team.ErrUniquenessViolation) {
		t.Fatalf("expected uniqueness violation, got %v", err)
	}

	count, err := svc.teams.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubmissionService_ValidationListsEveryField(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	input := userInput(1)
	input.Form.TeamName = "x"
	input.Form.PlayerID1 = "123"
	input.Form.IGLMail = "not-a-mail"

	_, err := svc.submission.Submit(ctx, input)
	var verr *team.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"teamName", "playerId1", "iglMail"}, fields)
}

func TestSubmissionService_ClosedGateAnswersBeforeValidation(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	_, err := svc.registration.UpdateConfig(ctx, registration.Update{IsRegistrationOpen: boolPtr(false)})
	require.NoError(t, err)

	_, err = svc.submission.Submit(ctx, SubmitInput{Form: team.Form{}})
	var denied *registration.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, registration.CauseManuallyClosed, denied.Cause)
	assert.Equal(t, registration.ReasonManuallyClosed, denied.Reason)
}

func TestSubmissionService_DeadlineDenies(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	stopAt := fixedNow
	_, err := svc.registration.UpdateConfig(ctx, registration.Update{SetStopAt: true, RegistrationStopAt: &stopAt})
	require.NoError(t, err)

	_, err = svc.submission.Submit(ctx, userInput(1))
	var denied *registration.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, registration.CauseDeadlinePassed, denied.Cause)
}

func TestSubmissionService_ClaimGuest(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	_, err := svc.submission.Submit(ctx, SubmitInput{Form: validForm(1), Submitter: team.Submitter{GuestUserID: "guest-1"}})
	require.NoError(t, err)

	claimed, err := svc.submission.ClaimGuest(ctx, "user-9", "guest-1")
	require.NoError(t, err)
	assert.Equal(t, 1, claimed)

	own, found, err := svc.submission.GetOwn(ctx, "user-9")
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, own.GuestUserID)

	_, err = svc.submission.ClaimGuest(ctx, "", "guest-1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.submission.ClaimGuest(ctx, "user-9", " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmissionService_GetOwnRequiresSession(t *testing.T) {
	svc := newServices()

	_, _, err := svc.submission.GetOwn(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, found, err := svc.submission.GetOwn(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSubmissionService_CountFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	configs := registrationmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	service := NewSubmissionService(configs, teams, &id.Sequence{Prefix: "team"}, nil, logging.NewNop())

	configs.On("Find", ctx).Return(registration.DefaultConfig(), true, nil).Once()
	teams.On("Count", ctx).Return(0, errors.New("connection reset")).Once()

	_, err := service.Submit(ctx, userInput(1))
	if err == nil || err.Error() != "count teams: connection reset" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmissionService_StoreFailureIsWrappedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	configs := registrationmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	service := NewSubmissionService(configs, teams, &id.Sequence{Prefix: "team"}, nil, logging.NewNop())

	storeErr := errors.New("deadlock detected")
	configs.On("Find", ctx).Return(registration.Config{}, false, nil).Once()
	teams.On("Count", ctx).Return(3, nil).Once()
	teams.
		On("Admit", ctx, mock.MatchedBy(func(reg team.Registration) bool {
			return reg.ID == "team-1" && reg.UserID == "user-1" && reg.TeamName == "Team 1"
		}), mock.Anything, mock.Anything).
		Return(team.AdmitResult{}, storeErr).
		Once()

	_, err := service.Submit(ctx, userInput(1))
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	assert.False(t, errors.Is(err, team.ErrDuplicateSubmission))
}

func TestSubmissionService_AdmitCallbackRechecksGateUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	configs := registrationmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	service := NewSubmissionService(configs, teams, &id.Sequence{Prefix: "team"}, nil, logging.NewNop())

	configs.On("Find", ctx).Return(registration.DefaultConfig(), true, nil).Once()
	teams.On("Count", ctx).Return(0, nil).Once()

	// Another submitter filled the last seat between the preliminary check and the write.
	full := registration.DefaultConfig()
	full.MaxTeams = intPtr(1)
	teams.
		On("Admit", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, _ team.Registration, admit team.AdmissionFunc, _ time.Time) (team.AdmitResult, error) {
			return team.AdmitResult{}, admit(team.AdmissionState{Config: full, CurrentTeams: 1})
		}).
		Once()

	_, err := service.Submit(ctx, userInput(1))
	var denied *registration.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, registration.CauseCapacityReached, denied.Cause)
}
