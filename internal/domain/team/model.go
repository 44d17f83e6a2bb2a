package team

import (
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
)

const PlayerSlots = 4

// Player is one roster slot. An empty Name and PlayerID means the slot is unused.
type Player struct {
	Name     string
	PlayerID string
}

func (p Player) IsEmpty() bool {
	return p.Name == "" && p.PlayerID == ""
}

// Registration is one accepted team. Optional string fields are empty when absent;
// storage adapters persist them as NULL.
type Registration struct {
	ID                 string
	UserID             string
	GuestUserID        string
	TeamName           string
	IGLName            string
	Players            [PlayerSlots]Player
	IGLMail            string
	IGLAlternateMail   string
	IGLNumber          string
	IGLAlternateNumber string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Submitter identifies who sent a form. UserID takes precedence over GuestUserID.
type Submitter struct {
	UserID      string
	GuestUserID string
}

// Normalized drops the guest id for authenticated submitters.
func (s Submitter) Normalized() Submitter {
	if s.UserID != "" {
		return Submitter{UserID: s.UserID}
	}
	return s
}

func (s Submitter) IsAnonymous() bool {
	return s.UserID == "" && s.GuestUserID == ""
}

// Status is the per-form admin toggle. Forms without a row are enabled.
type Status struct {
	TeamID    string
	IsEnabled bool
	UpdatedAt time.Time
}

// DailyCount is the number of registrations created on one UTC calendar day.
type DailyCount struct {
	Date  time.Time
	Count int
}

// AdmissionState is what the store hands to an AdmissionFunc while the admission lock is held.
type AdmissionState struct {
	Config       registration.Config
	CurrentTeams int
	Existing     *Registration
}

// AdmissionFunc decides whether the pending insert may proceed. A non-nil error aborts it.
type AdmissionFunc func(state AdmissionState) error

// AdmitResult is the outcome of a committed admission.
type AdmitResult struct {
	Registration Registration
	Config       registration.Config
	CurrentTeams int
	AutoClosed   bool
}
