package registration

import (
	"errors"
	"fmt"
	"time"
)

var ErrAdmissionDenied = errors.New("admission denied")

// Cause identifies which gate check rejected a submission.
type Cause string

const (
	CauseNone            Cause = ""
	CauseManuallyClosed  Cause = "registrationClosed"
	CauseDeadlinePassed  Cause = "deadlinePassed"
	CauseCapacityReached Cause = "capacityReached"
)

const (
	ReasonManuallyClosed  = "Registration is closed by administrator"
	ReasonDeadlinePassed  = "Registration deadline has passed"
	ReasonCapacityReached = "Maximum teams allowed has been reached"
)

// Decision is the outcome of CheckAdmission.
type Decision struct {
	Allowed bool
	Cause   Cause
	Reason  string
}

// Err returns nil for an allowed decision and a *DeniedError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Cause: d.Cause, Reason: d.Reason}
}

// DeniedError carries the user-facing reason; errors.Is matches ErrAdmissionDenied.
type DeniedError struct {
	Cause  Cause
	Reason string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAdmissionDenied, e.Reason)
}

func (e *DeniedError) Unwrap() error {
	return ErrAdmissionDenied
}

// CheckAdmission evaluates the gate. A reached cap is reported first, whatever the flag and
// deadline say, so a pool that closed itself keeps naming capacity. Otherwise manual close wins
// over the deadline, which denies from the stop instant onward.
func CheckAdmission(cfg Config, currentTeams int, now time.Time) Decision {
	switch {
	case capacityReached(cfg, currentTeams):
		return Decision{Cause: CauseCapacityReached, Reason: ReasonCapacityReached}
	case !cfg.IsRegistrationOpen:
		return Decision{Cause: CauseManuallyClosed, Reason: ReasonManuallyClosed}
	case deadlinePassed(cfg, now):
		return Decision{Cause: CauseDeadlinePassed, Reason: ReasonDeadlinePassed}
	default:
		return Decision{Allowed: true}
	}
}

// ReconcileCapacity closes an open config whose cap has been reached.
// It reports whether cfg changed; a config that is already closed is left alone.
func ReconcileCapacity(cfg Config, currentTeams int) (Config, bool) {
	if !cfg.IsRegistrationOpen || !capacityReached(cfg, currentTeams) {
		return cfg, false
	}
	cfg.IsRegistrationOpen = false
	return cfg, true
}

// Status is the read-only preview used for UI gating.
type Status struct {
	IsOpen           bool
	Message          string
	CurrentTeams     int
	MaxTeams         *int
	IsMaxReached     bool
	IsDeadlinePassed bool
	IsManualClosed   bool
}

// Preview reports every gate flag independently. The message follows CheckAdmission's order.
func Preview(cfg Config, currentTeams int, now time.Time) Status {
	status := Status{
		CurrentTeams:     currentTeams,
		MaxTeams:         cloneInt(cfg.MaxTeams),
		IsMaxReached:     capacityReached(cfg, currentTeams),
		IsDeadlinePassed: deadlinePassed(cfg, now),
		IsManualClosed:   !cfg.IsRegistrationOpen,
	}
	status.IsOpen = !status.IsManualClosed && !status.IsDeadlinePassed && !status.IsMaxReached

	switch {
	case status.IsMaxReached:
		status.Message = fmt.Sprintf("Maximum teams reached (%d/%d). Registration is now closed.", currentTeams, *cfg.MaxTeams)
	case status.IsManualClosed:
		status.Message = "Registration is currently closed"
	case status.IsDeadlinePassed:
		status.Message = ReasonDeadlinePassed
	default:
		status.Message = "Registration is open"
	}
	return status
}

func deadlinePassed(cfg Config, now time.Time) bool {
	return cfg.RegistrationStopAt != nil && !now.Before(*cfg.RegistrationStopAt)
}

func capacityReached(cfg Config, currentTeams int) bool {
	return cfg.MaxTeams != nil && currentTeams >= *cfg.MaxTeams
}
