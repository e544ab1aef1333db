package stmtql

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sentinel"
	"github.com/zoobzio/stmtql/internal/types"
)

// TryTableOf builds a table from the db tags of struct T. Fields without a
// db tag, or tagged "-", are skipped.
func TryTableOf[T any](name string) (Table, error) {
	metadata := sentinel.Inspect[T]()
	cols := make([]Column, 0, len(metadata.Fields))
	for _, field := range metadata.Fields {
		dbTag, ok := field.Tags["db"]
		if !ok || dbTag == "" || dbTag == "-" {
			continue
		}
		t, err := goSQLType(field.Type)
		if err != nil {
			return Table{}, fmt.Errorf("field %s: %w", field.Name, err)
		}
		cols = append(cols, Col(dbTag, t))
	}
	if len(cols) == 0 {
		return Table{}, fmt.Errorf("type %s has no db-tagged fields", metadata.TypeName)
	}
	return TryNewTable(name, cols...)
}

// TableOf builds a table from the db tags of struct T.
func TableOf[T any](name string) Table {
	t, err := TryTableOf[T](name)
	if err != nil {
		panic(err)
	}
	return t
}

// goSQLType maps a Go type name, as reported by sentinel, to a SQL type.
// Pointers map like their element type.
func goSQLType(goType string) (SQLType, error) {
	switch strings.TrimPrefix(goType, "*") {
	case "bool":
		return types.Boolean, nil
	case "int", "int8", "int16", "int32", "uint8", "uint16":
		return types.Integer, nil
	case "int64", "uint", "uint32", "uint64":
		return types.BigInt, nil
	case "float32", "float64":
		return types.Double, nil
	case "string":
		return types.Text, nil
	case "[]byte", "[]uint8":
		return types.Bytes, nil
	case "time.Time":
		return types.Timestamp, nil
	case "json.RawMessage":
		return types.JSON, nil
	}
	return types.Unknown, fmt.Errorf("no SQL type for Go type %s", goType)
}
