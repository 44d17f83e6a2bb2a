package usecase

import (
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

var fixedNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type services struct {
	store        *memory.Store
	configs      *memory.RegistrationConfigRepository
	teams        *memory.TeamRegistrationRepository
	registration *RegistrationService
	submission   *SubmissionService
	teamService  *TeamService
}

// newServices wires the services over one memory store. Each submission is one second after
// the previous so creation order is deterministic.
func newServices() *services {
	store := memory.NewStore(&id.Sequence{Prefix: "cfg"})
	configs := memory.NewRegistrationConfigRepository(store)
	teams := memory.NewTeamRegistrationRepository(store)
	logger := logging.NewNop()

	clock := fixedNow
	tick := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	registrationService := NewRegistrationService(configs, teams, nil, logger)
	registrationService.now = func() time.Time { return clock }
	submissionService := NewSubmissionService(configs, teams, &id.Sequence{Prefix: "team"}, nil, logger)
	submissionService.now = tick
	teamService := NewTeamService(teams, team.DefaultMatchSize, logger)
	teamService.now = func() time.Time { return clock }

	return &services{
		store:        store,
		configs:      configs,
		teams:        teams,
		registration: registrationService,
		submission:   submissionService,
		teamService:  teamService,
	}
}

func validForm(n int) team.Form {
	return team.Form{
		TeamName:  fmt.Sprintf("Team %d", n),
		IGLName:   fmt.Sprintf("Leader %d", n),
		Player1:   "Alpha",
		PlayerID1: fmt.Sprintf("1%010d", n),
		Player2:   "Bravo",
		PlayerID2: fmt.Sprintf("2%010d", n),
		IGLMail:   fmt.Sprintf("igl%d@example.com", n),
		IGLNumber: fmt.Sprintf("9%09d", n),
	}
}

func userInput(n int) SubmitInput {
	return SubmitInput{Form: validForm(n), Submitter: team.Submitter{UserID: fmt.Sprintf("user-%d", n)}}
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
