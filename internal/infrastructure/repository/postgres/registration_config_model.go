package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
)

const registrationConfigColumns = `public_id, is_registration_open, registration_stop_at, max_teams, updated_at`

type registrationConfigTableModel struct {
	PublicID           string        `db:"public_id"`
	IsRegistrationOpen bool          `db:"is_registration_open"`
	RegistrationStopAt sql.NullTime  `db:"registration_stop_at"`
	MaxTeams           sql.NullInt64 `db:"max_teams"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

func (m registrationConfigTableModel) toDomain() registration.Config {
	return registration.Config{
		ID:                 m.PublicID,
		IsRegistrationOpen: m.IsRegistrationOpen,
		RegistrationStopAt: fromNullTime(m.RegistrationStopAt),
		MaxTeams:           fromNullInt(m.MaxTeams),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}
