package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

type RegistrationConfigRepository struct {
	db *sqlx.DB
}

func NewRegistrationConfigRepository(db *sqlx.DB) *RegistrationConfigRepository {
	return &RegistrationConfigRepository{db: db}
}

func (r *RegistrationConfigRepository) Find(ctx context.Context) (registration.Config, bool, error) {
	query, args, err := firstConfigQuery("")
	if err != nil {
		return registration.Config{}, false, fmt.Errorf("build get registration config query: %w", err)
	}

	var row registrationConfigTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Config{}, false, nil
		}
		return registration.Config{}, false, fmt.Errorf("get registration config: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RegistrationConfigRepository) GetOrCreate(ctx context.Context, now time.Time) (registration.Config, bool, error) {
	created, err := insertDefaultConfig(ctx, r.db, now)
	if err != nil {
		return registration.Config{}, false, err
	}

	cfg, found, err := r.Find(ctx)
	if err != nil {
		return registration.Config{}, false, err
	}
	if !found {
		return registration.Config{}, false, fmt.Errorf("registration config missing after insert")
	}
	return cfg, created, nil
}

func (r *RegistrationConfigRepository) Update(ctx context.Context, update registration.Update, now time.Time) (registration.UpdateResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return registration.UpdateResult{}, fmt.Errorf("begin tx for registration config update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	cfg, created, err := lockConfig(ctx, tx, now)
	if err != nil {
		return registration.UpdateResult{}, err
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM team_registrations`); err != nil {
		return registration.UpdateResult{}, fmt.Errorf("count team registrations: %w", err)
	}

	cfg = update.Apply(cfg)
	cfg.UpdatedAt = now
	cfg, closed := registration.ReconcileCapacity(cfg, count)

	if err := writeConfig(ctx, tx, cfg); err != nil {
		return registration.UpdateResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return registration.UpdateResult{}, fmt.Errorf("commit registration config update: %w", err)
	}

	return registration.UpdateResult{Config: cfg, Created: created, AutoClosed: closed}, nil
}

func (r *RegistrationConfigRepository) CloseIfCapacityReached(ctx context.Context, now time.Time) (registration.Config, bool, error) {
	query := `
UPDATE registration_config
SET is_registration_open = FALSE,
    updated_at = $1
WHERE is_registration_open
  AND max_teams IS NOT NULL
  AND (SELECT COUNT(*) FROM team_registrations) >= max_teams
RETURNING ` + registrationConfigColumns

	var rows []registrationConfigTableModel
	if err := r.db.SelectContext(ctx, &rows, query, now); err != nil {
		return registration.Config{}, false, fmt.Errorf("close registration at capacity: %w", err)
	}
	if len(rows) > 0 {
		return rows[0].toDomain(), true, nil
	}

	cfg, _, err := r.Find(ctx)
	return cfg, false, err
}

// insertDefaultConfig reports whether this call created the singleton row.
func insertDefaultConfig(ctx context.Context, q sqlx.QueryerContext, now time.Time) (bool, error) {
	const query = `
INSERT INTO registration_config (is_registration_open, updated_at)
VALUES (TRUE, $1)
ON CONFLICT (singleton) DO NOTHING
RETURNING public_id`

	var inserted []string
	if err := sqlx.SelectContext(ctx, q, &inserted, query, now); err != nil {
		return false, fmt.Errorf("insert default registration config: %w", err)
	}
	return len(inserted) > 0, nil
}

// lockConfig creates the row if needed and holds it FOR UPDATE until tx ends.
// Every admission and config write goes through this lock.
func lockConfig(ctx context.Context, tx *sqlx.Tx, now time.Time) (registration.Config, bool, error) {
	created, err := insertDefaultConfig(ctx, tx, now)
	if err != nil {
		return registration.Config{}, false, err
	}

	query, args, err := firstConfigQuery("FOR UPDATE")
	if err != nil {
		return registration.Config{}, false, fmt.Errorf("build lock registration config query: %w", err)
	}

	var row registrationConfigTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return registration.Config{}, false, fmt.Errorf("lock registration config: %w", err)
	}
	return row.toDomain(), created, nil
}

// firstConfigQuery picks the oldest-updated row, so readers and the admission lock agree on
// the same row even if the singleton constraint were ever dropped.
func firstConfigQuery(suffix string) (string, []any, error) {
	return qb.Select(registrationConfigColumns).
		From("registration_config").
		OrderBy("updated_at ASC", "id ASC").
		Limit(1).
		Suffix(suffix).
		ToSQL()
}

func writeConfig(ctx context.Context, tx *sqlx.Tx, cfg registration.Config) error {
	const query = `
UPDATE registration_config
SET is_registration_open = :is_registration_open,
    registration_stop_at = :registration_stop_at,
    max_teams = :max_teams,
    updated_at = :updated_at
WHERE public_id = :public_id`

	stmt, args, err := sqlx.Named(query, registrationConfigTableModel{
		PublicID:           cfg.ID,
		IsRegistrationOpen: cfg.IsRegistrationOpen,
		RegistrationStopAt: toNullTime(cfg.RegistrationStopAt),
		MaxTeams:           toNullInt(cfg.MaxTeams),
		UpdatedAt:          cfg.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind update registration config query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(stmt), args...); err != nil {
		return fmt.Errorf("update registration config: %w", err)
	}
	return nil
}
