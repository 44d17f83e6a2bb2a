// Package querybuilder renders small postgres statements with positional placeholders.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errNoTable   = errors.New("querybuilder: table is required")
	errNoColumns = errors.New("querybuilder: columns are required")
)

// writer accumulates SQL text and its bound arguments.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes raw SQL, replacing each ? with the next bound argument.
func (w *writer) expr(raw string, args []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.sql.WriteByte(raw[i])
	}
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.sql.WriteString(" WHERE ")
		} else {
			w.sql.WriteString(" AND ")
		}
		c.write(w)
	}
}

type Condition interface {
	write(w *writer)
}

type conditionFunc func(w *writer)

func (f conditionFunc) write(w *writer) { f(w) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(w *writer) {
		w.sql.WriteString(column)
		w.sql.WriteString(" = ")
		w.bind(value)
	})
}

// In matches nothing when values is empty.
func In[T any](column string, values []T) Condition {
	return conditionFunc(func(w *writer) {
		if len(values) == 0 {
			w.sql.WriteString("FALSE")
			return
		}
		w.sql.WriteString(column)
		w.sql.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				w.sql.WriteString(", ")
			}
			w.bind(v)
		}
		w.sql.WriteString(")")
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(w *writer) {
		w.sql.WriteString(column)
		w.sql.WriteString(" IS NULL")
	})
}

// Expr is a raw condition using ? for its arguments.
func Expr(raw string, args ...any) Condition {
	return conditionFunc(func(w *writer) { w.expr(raw, args) })
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	suffix  string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

// Suffix is appended verbatim, e.g. FOR UPDATE.
func (b *SelectBuilder) Suffix(sql string) *SelectBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, errNoColumns
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}

	var w writer
	w.sql.WriteString("SELECT ")
	w.sql.WriteString(strings.Join(b.columns, ", "))
	w.sql.WriteString(" FROM ")
	w.sql.WriteString(b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.sql.WriteString(" ORDER BY ")
		w.sql.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.sql.WriteString(" LIMIT ")
		w.sql.WriteString(strconv.Itoa(b.limit))
	}
	if b.suffix != "" {
		w.sql.WriteString(" ")
		w.sql.WriteString(b.suffix)
	}
	return w.sql.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Value adds one column of a single-row insert.
func (b *InsertBuilder) Value(column string, value any) *InsertBuilder {
	b.columns = append(b.columns, column)
	b.values = append(b.values, value)
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.columns) == 0 {
		return "", nil, errNoColumns
	}

	var w writer
	w.sql.WriteString("INSERT INTO ")
	w.sql.WriteString(b.table)
	w.sql.WriteString(" (")
	w.sql.WriteString(strings.Join(b.columns, ", "))
	w.sql.WriteString(") VALUES (")
	for i, v := range b.values {
		if i > 0 {
			w.sql.WriteString(", ")
		}
		w.bind(v)
	}
	w.sql.WriteString(")")
	if b.suffix != "" {
		w.sql.WriteString(" ")
		w.sql.WriteString(b.suffix)
	}
	return w.sql.String(), w.args, nil
}

type assignment struct {
	column string
	raw    string
	args   []any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: "?", args: []any{value}})
	return b
}

// SetExpr assigns a raw expression using ? for its arguments.
func (b *UpdateBuilder) SetExpr(column, raw string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: raw, args: args})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.sets) == 0 {
		return "", nil, errNoColumns
	}

	var w writer
	w.sql.WriteString("UPDATE ")
	w.sql.WriteString(b.table)
	w.sql.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.sql.WriteString(", ")
		}
		w.sql.WriteString(s.column)
		w.sql.WriteString(" = ")
		w.expr(s.raw, s.args)
	}
	w.where(b.where)
	return w.sql.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

// ToSQL refuses to render an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.where) == 0 {
		return "", nil, errors.New("querybuilder: delete without where")
	}

	var w writer
	w.sql.WriteString("DELETE FROM ")
	w.sql.WriteString(b.table)
	w.where(b.where)
	return w.sql.String(), w.args, nil
}
