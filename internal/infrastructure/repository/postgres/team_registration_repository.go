package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

type TeamRegistrationRepository struct {
	db *sqlx.DB
}

func NewTeamRegistrationRepository(db *sqlx.DB) *TeamRegistrationRepository {
	return &TeamRegistrationRepository{db: db}
}

// Admit serializes on the config row lock, so the count, the duplicate lookup and the insert
// are consistent with every other admission.
func (r *TeamRegistrationRepository) Admit(ctx context.Context, reg team.Registration, admit team.AdmissionFunc, now time.Time) (team.AdmitResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return team.AdmitResult{}, fmt.Errorf("begin tx for team admission: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	cfg, _, err := lockConfig(ctx, tx, now)
	if err != nil {
		return team.AdmitResult{}, err
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM team_registrations`); err != nil {
		return team.AdmitResult{}, fmt.Errorf("count team registrations: %w", err)
	}

	existing, err := findBySubmitter(ctx, tx, team.Submitter{UserID: reg.UserID, GuestUserID: reg.GuestUserID})
	if err != nil {
		return team.AdmitResult{}, err
	}

	if admit != nil {
		if err := admit(team.AdmissionState{Config: cfg, CurrentTeams: count, Existing: existing}); err != nil {
			return team.AdmitResult{}, err
		}
	}

	const insertQuery = `
INSERT INTO team_registrations (
    public_id, user_id, guest_user_id, team_name, igl_name,
    player1, player_id1, player2, player_id2, player3, player_id3, player4, player_id4,
    igl_mail, igl_alternate_mail, igl_number, igl_alternate_number, created_at, updated_at
) VALUES (
    :public_id, :user_id, :guest_user_id, :team_name, :igl_name,
    :player1, :player_id1, :player2, :player_id2, :player3, :player_id3, :player4, :player_id4,
    :igl_mail, :igl_alternate_mail, :igl_number, :igl_alternate_number, :created_at, :updated_at
)`
	insertSQL, insertArgs, err := sqlx.Named(insertQuery, newTeamRegistrationTableModel(reg))
	if err != nil {
		return team.AdmitResult{}, fmt.Errorf("bind insert team registration query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(insertSQL), insertArgs...); err != nil {
		return team.AdmitResult{}, fmt.Errorf("insert team registration: %w", mapConstraintError(err))
	}
	count++

	cfg, closed := registration.ReconcileCapacity(cfg, count)
	if closed {
		cfg.UpdatedAt = now
		if err := writeConfig(ctx, tx, cfg); err != nil {
			return team.AdmitResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return team.AdmitResult{}, fmt.Errorf("commit team admission: %w", err)
	}

	return team.AdmitResult{
		Registration: reg,
		Config:       cfg,
		CurrentTeams: count,
		AutoClosed:   closed,
	}, nil
}

func (r *TeamRegistrationRepository) GetByID(ctx context.Context, id string) (team.Registration, bool, error) {
	return r.getOne(ctx, "public_id", id)
}

func (r *TeamRegistrationRepository) GetByUserID(ctx context.Context, userID string) (team.Registration, bool, error) {
	if userID == "" {
		return team.Registration{}, false, nil
	}
	return r.getOne(ctx, "user_id", userID)
}

func (r *TeamRegistrationRepository) getOne(ctx context.Context, column, value string) (team.Registration, bool, error) {
	query := `SELECT ` + teamRegistrationColumns + `
FROM team_registrations
WHERE ` + column + ` = $1
LIMIT 1`

	var rows []teamRegistrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, value); err != nil {
		return team.Registration{}, false, fmt.Errorf("get team registration by %s: %w", column, err)
	}
	if len(rows) == 0 {
		return team.Registration{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}

func (r *TeamRegistrationRepository) ListByCreation(ctx context.Context) ([]team.Registration, error) {
	query := `SELECT ` + teamRegistrationColumns + `
FROM team_registrations
ORDER BY created_at ASC, id ASC`

	var rows []teamRegistrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list team registrations: %w", err)
	}
	return teamRegistrationsToDomain(rows), nil
}

func (r *TeamRegistrationRepository) ListRecent(ctx context.Context, limit int) ([]team.Registration, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + teamRegistrationColumns + `
FROM team_registrations
ORDER BY created_at DESC, id DESC
LIMIT $1`

	var rows []teamRegistrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list recent team registrations: %w", err)
	}
	return teamRegistrationsToDomain(rows), nil
}

func (r *TeamRegistrationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM team_registrations`); err != nil {
		return 0, fmt.Errorf("count team registrations: %w", err)
	}
	return count, nil
}

func (r *TeamRegistrationRepository) CountByDay(ctx context.Context, since time.Time) ([]team.DailyCount, error) {
	const query = `
SELECT (created_at AT TIME ZONE 'UTC')::date AS day, COUNT(*) AS total
FROM team_registrations
WHERE created_at >= $1
GROUP BY day
ORDER BY day DESC`

	var rows []dailyCountRow
	if err := r.db.SelectContext(ctx, &rows, query, since.UTC()); err != nil {
		return nil, fmt.Errorf("count team registrations by day: %w", err)
	}

	out := make([]team.DailyCount, 0, len(rows))
	for _, row := range rows {
		d := row.Day.UTC()
		out = append(out, team.DailyCount{
			Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Count: row.Total,
		})
	}
	return out, nil
}

func (r *TeamRegistrationRepository) Update(ctx context.Context, reg team.Registration) (bool, error) {
	const query = `
UPDATE team_registrations
SET team_name = :team_name,
    igl_name = :igl_name,
    player1 = :player1,
    player_id1 = :player_id1,
    player2 = :player2,
    player_id2 = :player_id2,
    player3 = :player3,
    player_id3 = :player_id3,
    player4 = :player4,
    player_id4 = :player_id4,
    igl_mail = :igl_mail,
    igl_alternate_mail = :igl_alternate_mail,
    igl_number = :igl_number,
    igl_alternate_number = :igl_alternate_number,
    updated_at = :updated_at
WHERE public_id = :public_id`

	stmt, args, err := sqlx.Named(query, newTeamRegistrationTableModel(reg))
	if err != nil {
		return false, fmt.Errorf("bind update team registration query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(stmt), args...)
	if err != nil {
		return false, fmt.Errorf("update team registration: %w", mapConstraintError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for team registration update: %w", err)
	}
	return affected > 0, nil
}

func (r *TeamRegistrationRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM team_registrations WHERE public_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete team registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for team registration delete: %w", err)
	}
	return affected > 0, nil
}

func (r *TeamRegistrationRepository) ClaimGuest(ctx context.Context, guestUserID, userID string, now time.Time) (int, error) {
	if guestUserID == "" || userID == "" {
		return 0, nil
	}

	const query = `
UPDATE team_registrations
SET user_id = $1,
    guest_user_id = NULL,
    updated_at = $3
WHERE guest_user_id = $2`

	// The partial unique index on user_id rejects a claim by a user who already owns a record.
	res, err := r.db.ExecContext(ctx, query, userID, guestUserID, now)
	if err != nil {
		mapped := mapConstraintError(err)
		return 0, fmt.Errorf("claim guest registrations: %w", mapped)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for guest claim: %w", err)
	}
	return int(affected), nil
}

func (r *TeamRegistrationRepository) SetStatus(ctx context.Context, status team.Status) error {
	const query = `
INSERT INTO team_registration_status (team_public_id, is_enabled, updated_at)
VALUES (:team_public_id, :is_enabled, :updated_at)
ON CONFLICT (team_public_id)
DO UPDATE SET
    is_enabled = EXCLUDED.is_enabled,
    updated_at = EXCLUDED.updated_at`

	stmt, args, err := sqlx.Named(query, teamStatusTableModel{
		TeamPublicID: status.TeamID,
		IsEnabled:    status.IsEnabled,
		UpdatedAt:    status.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind upsert team status query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(stmt), args...); err != nil {
		return fmt.Errorf("upsert team status: %w", err)
	}
	return nil
}

func (r *TeamRegistrationRepository) ListStatuses(ctx context.Context) ([]team.Status, error) {
	const query = `
SELECT team_public_id, is_enabled, updated_at
FROM team_registration_status
ORDER BY team_public_id`

	var rows []teamStatusTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list team statuses: %w", err)
	}

	out := make([]team.Status, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Status{TeamID: row.TeamPublicID, IsEnabled: row.IsEnabled, UpdatedAt: row.UpdatedAt.UTC()})
	}
	return out, nil
}

// findBySubmitter applies the same identity precedence as team.CheckDuplicate.
func findBySubmitter(ctx context.Context, tx *sqlx.Tx, sub team.Submitter) (*team.Registration, error) {
	sub = sub.Normalized()

	column, value := "user_id", sub.UserID
	if value == "" {
		column, value = "guest_user_id", sub.GuestUserID
	}
	if value == "" {
		return nil, nil
	}

	query := `SELECT ` + teamRegistrationColumns + `
FROM team_registrations
WHERE ` + column + ` = $1
LIMIT 1`

	var rows []teamRegistrationTableModel
	if err := tx.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("find registration by %s: %w", column, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	existing := rows[0].toDomain()
	return &existing, nil
}
