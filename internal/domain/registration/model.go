package registration

import "time"

// Config is the admission policy. A single logical row exists per deployment.
type Config struct {
	ID                 string
	IsRegistrationOpen bool
	RegistrationStopAt *time.Time
	MaxTeams           *int
	UpdatedAt          time.Time
}

// DefaultConfig is what a lazily created config row starts with: open, no deadline, uncapped.
func DefaultConfig() Config {
	return Config{IsRegistrationOpen: true}
}

// Update is a partial config change. Nil pointers and unset flags leave fields untouched.
// SetStopAt with a nil RegistrationStopAt clears the deadline; SetMaxTeams with a nil MaxTeams
// removes the cap.
type Update struct {
	IsRegistrationOpen *bool

	SetStopAt          bool
	RegistrationStopAt *time.Time

	SetMaxTeams bool
	MaxTeams    *int
}

func (u Update) IsEmpty() bool {
	return u.IsRegistrationOpen == nil && !u.SetStopAt && !u.SetMaxTeams
}

func (u Update) Apply(cfg Config) Config {
	if u.IsRegistrationOpen != nil {
		cfg.IsRegistrationOpen = *u.IsRegistrationOpen
	}
	if u.SetStopAt {
		cfg.RegistrationStopAt = cloneTime(u.RegistrationStopAt)
	}
	if u.SetMaxTeams {
		cfg.MaxTeams = cloneInt(u.MaxTeams)
	}
	return cfg
}

// UpdateResult reports what a config write did.
type UpdateResult struct {
	Config     Config
	Created    bool
	AutoClosed bool
}

// Clone returns a copy that shares no pointers with cfg.
func (c Config) Clone() Config {
	c.RegistrationStopAt = cloneTime(c.RegistrationStopAt)
	c.MaxTeams = cloneInt(c.MaxTeams)
	return c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := v.UTC()
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
