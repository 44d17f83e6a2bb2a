package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

const teamRegistrationColumns = `public_id, user_id, guest_user_id, team_name, igl_name,
    player1, player_id1, player2, player_id2, player3, player_id3, player4, player_id4,
    igl_mail, igl_alternate_mail, igl_number, igl_alternate_number, created_at, updated_at`

type teamRegistrationTableModel struct {
	PublicID           string         `db:"public_id"`
	UserID             sql.NullString `db:"user_id"`
	GuestUserID        sql.NullString `db:"guest_user_id"`
	TeamName           string         `db:"team_name"`
	IGLName            string         `db:"igl_name"`
	Player1            string         `db:"player1"`
	PlayerID1          string         `db:"player_id1"`
	Player2            string         `db:"player2"`
	PlayerID2          string         `db:"player_id2"`
	Player3            sql.NullString `db:"player3"`
	PlayerID3          sql.NullString `db:"player_id3"`
	Player4            sql.NullString `db:"player4"`
	PlayerID4          sql.NullString `db:"player_id4"`
	IGLMail            string         `db:"igl_mail"`
	IGLAlternateMail   sql.NullString `db:"igl_alternate_mail"`
	IGLNumber          string         `db:"igl_number"`
	IGLAlternateNumber sql.NullString `db:"igl_alternate_number"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type teamStatusTableModel struct {
	TeamPublicID string    `db:"team_public_id"`
	IsEnabled    bool      `db:"is_enabled"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type dailyCountRow struct {
	Day   time.Time `db:"day"`
	Total int       `db:"total"`
}

func newTeamRegistrationTableModel(reg team.Registration) teamRegistrationTableModel {
	return teamRegistrationTableModel{
		PublicID:           reg.ID,
		UserID:             toNullString(reg.UserID),
		GuestUserID:        toNullString(reg.GuestUserID),
		TeamName:           reg.TeamName,
		IGLName:            reg.IGLName,
		Player1:            reg.Players[0].Name,
		PlayerID1:          reg.Players[0].PlayerID,
		Player2:            reg.Players[1].Name,
		PlayerID2:          reg.Players[1].PlayerID,
		Player3:            toNullString(reg.Players[2].Name),
		PlayerID3:          toNullString(reg.Players[2].PlayerID),
		Player4:            toNullString(reg.Players[3].Name),
		PlayerID4:          toNullString(reg.Players[3].PlayerID),
		IGLMail:            reg.IGLMail,
		IGLAlternateMail:   toNullString(reg.IGLAlternateMail),
		IGLNumber:          reg.IGLNumber,
		IGLAlternateNumber: toNullString(reg.IGLAlternateNumber),
		CreatedAt:          reg.CreatedAt.UTC(),
		UpdatedAt:          reg.UpdatedAt.UTC(),
	}
}

func (m teamRegistrationTableModel) toDomain() team.Registration {
	return team.Registration{
		ID:          m.PublicID,
		UserID:      fromNullString(m.UserID),
		GuestUserID: fromNullString(m.GuestUserID),
		TeamName:    m.TeamName,
		IGLName:     m.IGLName,
		Players: [team.PlayerSlots]team.Player{
			{Name: m.Player1, PlayerID: m.PlayerID1},
			{Name: m.Player2, PlayerID: m.PlayerID2},
			{Name: fromNullString(m.Player3), PlayerID: fromNullString(m.PlayerID3)},
			{Name: fromNullString(m.Player4), PlayerID: fromNullString(m.PlayerID4)},
		},
		IGLMail:            m.IGLMail,
		IGLAlternateMail:   fromNullString(m.IGLAlternateMail),
		IGLNumber:          m.IGLNumber,
		IGLAlternateNumber: fromNullString(m.IGLAlternateNumber),
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

func teamRegistrationsToDomain(rows []teamRegistrationTableModel) []team.Registration {
	out := make([]team.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
