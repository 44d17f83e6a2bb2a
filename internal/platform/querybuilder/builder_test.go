package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleRow struct {
	PublicID string `db:"public_id"`
	Maps     string `db:"maps"`
	Internal string
	Skipped  string `db:"-"`
}

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "maps").
		From("schedules").
		Where(Eq("match_type", "scrim"), IsNull("deleted_at"), In("maps", []string{"erangel", "miramar"})).
		OrderBy("schedule_date ASC", "id ASC").
		Limit(5).
		Suffix("FOR UPDATE").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT public_id, maps FROM schedules WHERE match_type = $1 AND deleted_at IS NULL AND maps IN ($2, $3) ORDER BY schedule_date ASC, id ASC LIMIT 5 FOR UPDATE", query)
	assert.Equal(t, []any{"scrim", "erangel", "miramar"}, args)
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").From("rooms").Where(In[int]("match_number", nil)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM rooms WHERE FALSE", query)
	assert.Empty(t, args)
}

func TestSelectBuilder_Errors(t *testing.T) {
	_, _, err := Select().From("rooms").ToSQL()
	assert.ErrorIs(t, err, errNoColumns)

	_, _, err = Select("id").ToSQL()
	assert.ErrorIs(t, err, errNoTable)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("rooms").
		Set("is_locked", true).
		SetExpr("updated_at", "GREATEST(updated_at, ?)", "2026-01-01").
		Where(Eq("public_id", "r1"), Expr("match_number > ?", 0)).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE rooms SET is_locked = $1, updated_at = GREATEST(updated_at, $2) WHERE public_id = $3 AND match_number > $4", query)
	assert.Equal(t, []any{true, "2026-01-01", "r1", 0}, args)
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	_, _, err := DeleteFrom("schedules").ToSQL()
	require.Error(t, err)

	query, args, err := DeleteFrom("schedules").Where(Eq("public_id", "s1")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM schedules WHERE public_id = $1", query)
	assert.Equal(t, []any{"s1"}, args)
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("schedules", &scheduleRow{PublicID: "s1", Maps: "erangel", Internal: "x"}).
		Suffix("RETURNING id").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO schedules (public_id, maps) VALUES ($1, $2) RETURNING id", query)
	assert.Equal(t, []any{"s1", "erangel"}, args)
	assert.Equal(t, []string{"public_id", "maps"}, Columns(scheduleRow{}))
}

func TestUpdateModel(t *testing.T) {
	b, err := UpdateModel("schedules", scheduleRow{PublicID: "s1", Maps: "sanhok"}, "maps")
	require.NoError(t, err)

	query, args, err := b.Where(Eq("public_id", "s1")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE schedules SET maps = $1 WHERE public_id = $2", query)
	assert.Equal(t, []any{"sanhok", "s1"}, args)

	_, err = UpdateModel("schedules", scheduleRow{}, "nope")
	require.Error(t, err)

	_, err = UpdateModel("schedules", (*scheduleRow)(nil), "maps")
	require.Error(t, err)
}
