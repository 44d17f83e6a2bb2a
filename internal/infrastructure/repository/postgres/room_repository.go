package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-registration/internal/domain/room"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

const roomsTable = "rooms"

var roomColumns = qb.Columns(roomTableModel{})

type roomTableModel struct {
	PublicID          string       `db:"public_id"`
	MatchNumber       int          `db:"match_number"`
	RoomID            string       `db:"room_id"`
	RoomPassword      string       `db:"room_password"`
	MaxTeams          int          `db:"max_teams"`
	IsLocked          bool         `db:"is_locked"`
	VisibleToAll      bool         `db:"visible_to_all"`
	PasswordShareTime sql.NullTime `db:"password_share_time"`
	CreatedAt         time.Time    `db:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at"`
}

func (m roomTableModel) toDomain() room.Room {
	return room.Room{
		ID:                m.PublicID,
		MatchNumber:       m.MatchNumber,
		RoomID:            m.RoomID,
		RoomPassword:      m.RoomPassword,
		MaxTeams:          m.MaxTeams,
		IsLocked:          m.IsLocked,
		VisibleToAll:      m.VisibleToAll,
		PasswordShareTime: fromNullTime(m.PasswordShareTime),
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
}

func newRoomTableModel(r room.Room) roomTableModel {
	return roomTableModel{
		PublicID:          r.ID,
		MatchNumber:       r.MatchNumber,
		RoomID:            r.RoomID,
		RoomPassword:      r.RoomPassword,
		MaxTeams:          r.MaxTeams,
		IsLocked:          r.IsLocked,
		VisibleToAll:      r.VisibleToAll,
		PasswordShareTime: toNullTime(r.PasswordShareTime),
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
}

type RoomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) List(ctx context.Context) ([]room.Room, error) {
	query, args, err := qb.Select(roomColumns...).From(roomsTable).OrderBy("match_number ASC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query: %w", err)
	}

	var rows []roomTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	out := make([]room.Room, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (room.Room, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", id))
}

func (r *RoomRepository) GetByMatchNumber(ctx context.Context, matchNumber int) (room.Room, bool, error) {
	return r.getOne(ctx, qb.Eq("match_number", matchNumber))
}

func (r *RoomRepository) getOne(ctx context.Context, cond qb.Condition) (room.Room, bool, error) {
	query, args, err := qb.Select(roomColumns...).From(roomsTable).Where(cond).ToSQL()
	if err != nil {
		return room.Room{}, false, fmt.Errorf("build get room query: %w", err)
	}

	var row roomTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return room.Room{}, false, nil
		}
		return room.Room{}, false, fmt.Errorf("get room: %w", err)
	}
	return row.toDomain(), true, nil
}

// Create numbers rooms sequentially. The table lock keeps concurrent creations from
// reading the same MAX(match_number).
func (r *RoomRepository) Create(ctx context.Context, item room.Room) (room.Room, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return room.Room{}, fmt.Errorf("begin tx for room create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE rooms IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return room.Room{}, fmt.Errorf("lock rooms table: %w", err)
	}
	if err := tx.GetContext(ctx, &item.MatchNumber, `SELECT COALESCE(MAX(match_number), 0) + 1 FROM rooms`); err != nil {
		return room.Room{}, fmt.Errorf("next room match number: %w", err)
	}

	query, args, err := qb.InsertModel(roomsTable, newRoomTableModel(item)).ToSQL()
	if err != nil {
		return room.Room{}, fmt.Errorf("build insert room query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return room.Room{}, fmt.Errorf("insert room: %w", mapConstraintError(err))
	}
	if err := tx.Commit(); err != nil {
		return room.Room{}, fmt.Errorf("commit room create: %w", err)
	}
	return item, nil
}

func (r *RoomRepository) Update(ctx context.Context, item room.Room) (bool, error) {
	b, err := qb.UpdateModel(roomsTable, newRoomTableModel(item),
		"is_locked", "visible_to_all", "password_share_time", "updated_at")
	if err != nil {
		return false, fmt.Errorf("build update room query: %w", err)
	}
	query, args, err := b.Where(qb.Eq("public_id", item.ID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update room query: %w", err)
	}
	return execAffected(ctx, r.db, "update room", query, args)
}
