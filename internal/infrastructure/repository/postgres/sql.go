package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/tournament-registration/internal/domain/room"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

const pqUniqueViolation = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// execAffected runs a write and reports whether any row matched.
func execAffected(ctx context.Context, db sqlx.ExecerContext, op, query string, args []any) (bool, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for %s: %w", op, err)
	}
	return affected > 0, nil
}

// mapConstraintError turns unique violations on known constraints into domain errors.
// The driver error stays attached as a secondary error for logs.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pqUniqueViolation {
		return err
	}

	var domainErr error
	switch pqErr.Constraint {
	case "uq_team_registrations_user_id":
		domainErr = &team.DuplicateError{}
	case "uq_team_registrations_guest_user_id":
		domainErr = &team.DuplicateError{Guest: true}
	case "uq_team_registrations_igl_mail":
		domainErr = &team.UniquenessError{Field: "iglMail"}
	case "uq_team_registrations_igl_number":
		domainErr = &team.UniquenessError{Field: "iglNumber"}
	case "uq_rooms_room_id":
		domainErr = room.ErrDuplicateRoomID
	default:
		return err
	}
	return crerr.WithSecondaryError(domainErr, err)
}

func toNullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func fromNullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func toNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}

func fromNullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time.UTC()
	return &out
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}
