package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

const schedulesTable = "schedules"

var scheduleColumns = qb.Columns(scheduleTableModel{})

type scheduleTableModel struct {
	PublicID  string    `db:"public_id"`
	Date      string    `db:"schedule_date"`
	Time      string    `db:"schedule_time"`
	Maps      string    `db:"maps"`
	Type      string    `db:"match_type"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m scheduleTableModel) toDomain() schedule.Schedule {
	return schedule.Schedule{
		ID:        m.PublicID,
		Date:      m.Date,
		Time:      m.Time,
		Maps:      m.Maps,
		Type:      m.Type,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func newScheduleTableModel(s schedule.Schedule) scheduleTableModel {
	return scheduleTableModel{
		PublicID:  s.ID,
		Date:      s.Date,
		Time:      s.Time,
		Maps:      s.Maps,
		Type:      s.Type,
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
}

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) List(ctx context.Context) ([]schedule.Schedule, error) {
	query, args, err := qb.Select(scheduleColumns...).
		From(schedulesTable).
		OrderBy("schedule_date ASC", "schedule_time ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list schedules query: %w", err)
	}

	var rows []scheduleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	out := make([]schedule.Schedule, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (schedule.Schedule, bool, error) {
	query, args, err := qb.Select(scheduleColumns...).
		From(schedulesTable).
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return schedule.Schedule{}, false, fmt.Errorf("build get schedule query: %w", err)
	}

	var row scheduleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Schedule{}, false, nil
		}
		return schedule.Schedule{}, false, fmt.Errorf("get schedule: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, s schedule.Schedule) error {
	query, args, err := qb.InsertModel(schedulesTable, newScheduleTableModel(s)).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert schedule query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) Update(ctx context.Context, s schedule.Schedule) (bool, error) {
	b, err := qb.UpdateModel(schedulesTable, newScheduleTableModel(s),
		"schedule_date", "schedule_time", "maps", "match_type", "updated_at")
	if err != nil {
		return false, fmt.Errorf("build update schedule query: %w", err)
	}
	query, args, err := b.Where(qb.Eq("public_id", s.ID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update schedule query: %w", err)
	}
	return execAffected(ctx, r.db, "update schedule", query, args)
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom(schedulesTable).Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete schedule query: %w", err)
	}
	return execAffected(ctx, r.db, "delete schedule", query, args)
}
