package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-registration/internal/domain/formconfig"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

const formConfigTable = "form_config"

var formConfigColumns = qb.Columns(formConfigTableModel{})

type formConfigTableModel struct {
	PublicID  string    `db:"public_id"`
	Fields    string    `db:"fields"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m formConfigTableModel) toDomain() (formconfig.Config, error) {
	fields, err := formconfig.Decode(m.Fields)
	if err != nil {
		return formconfig.Config{}, err
	}
	return formconfig.Config{
		ID:        m.PublicID,
		Fields:    fields,
		UpdatedAt: m.UpdatedAt.UTC(),
	}, nil
}

type FormConfigRepository struct {
	db *sqlx.DB
}

func NewFormConfigRepository(db *sqlx.DB) *FormConfigRepository {
	return &FormConfigRepository{db: db}
}

func (r *FormConfigRepository) Find(ctx context.Context) (formconfig.Config, bool, error) {
	query, args, err := qb.Select(formConfigColumns...).
		From(formConfigTable).
		OrderBy("updated_at ASC", "id ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return formconfig.Config{}, false, fmt.Errorf("build get form config query: %w", err)
	}

	var row formConfigTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return formconfig.Config{}, false, nil
		}
		return formconfig.Config{}, false, fmt.Errorf("get form config: %w", err)
	}
	cfg, err := row.toDomain()
	if err != nil {
		return formconfig.Config{}, false, err
	}
	return cfg, true, nil
}

func (r *FormConfigRepository) Save(ctx context.Context, fields []formconfig.Field, now time.Time) (formconfig.Config, error) {
	raw, err := formconfig.Encode(fields)
	if err != nil {
		return formconfig.Config{}, err
	}
	query, args, err := upsertFormConfigQuery(raw, now)
	if err != nil {
		return formconfig.Config{}, fmt.Errorf("build save form config query: %w", err)
	}

	var row formConfigTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return formconfig.Config{}, fmt.Errorf("save form config: %w", err)
	}
	return row.toDomain()
}

// upsertFormConfigQuery writes the singleton row, creating it on first save.
func upsertFormConfigQuery(raw string, now time.Time) (string, []any, error) {
	return qb.InsertInto(formConfigTable).
		Value("fields", raw).
		Value("updated_at", now.UTC()).
		Suffix(`ON CONFLICT (singleton) DO UPDATE SET fields = EXCLUDED.fields, updated_at = EXCLUDED.updated_at RETURNING ` +
			strings.Join(formConfigColumns, ", ")).
		ToSQL()
}
