package memory

import (
	"sync"

	"github.com/riskibarqy/tournament-registration/internal/domain/contact"
	"github.com/riskibarqy/tournament-registration/internal/domain/formconfig"
	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/room"
	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/id"
)

// Store is the shared state behind the in-memory repositories. One mutex covers config and
// teams so admission sees a consistent count.
type Store struct {
	mu sync.RWMutex

	ids id.Generator

	config     *registration.Config
	teams      []team.Registration
	statuses   map[string]team.Status
	schedules  []schedule.Schedule
	rooms      []room.Room
	contacts   []contact.Submission
	formConfig *formconfig.Config
}

func NewStore(ids id.Generator) *Store {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &Store{
		ids:      ids,
		statuses: make(map[string]team.Status),
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
