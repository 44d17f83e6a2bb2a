package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Columns lists the db-tagged columns of a struct type, in field order.
func Columns(model any) []string {
	cols, _, err := fieldsOf(model)
	if err != nil {
		return nil
	}
	return cols
}

// InsertModel inserts every db-tagged field of model. A model without columns fails at ToSQL.
func InsertModel(table string, model any) *InsertBuilder {
	b := InsertInto(table)
	cols, vals, err := fieldsOf(model)
	if err != nil {
		return b
	}
	for i, col := range cols {
		b.Value(col, vals[i])
	}
	return b
}

// UpdateModel sets the named columns from model.
func UpdateModel(table string, model any, columns ...string) (*UpdateBuilder, error) {
	cols, vals, err := fieldsOf(model)
	if err != nil {
		return nil, err
	}
	b := Update(table)
	for _, want := range columns {
		idx := slices.Index(cols, want)
		if idx < 0 {
			return nil, fmt.Errorf("querybuilder: model has no column %q", want)
		}
		b.Set(want, vals[idx])
	}
	return b, nil
}

func fieldsOf(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("querybuilder: model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("querybuilder: model must be a struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("querybuilder: model has no db columns")
	}
	return cols, vals, nil
}
