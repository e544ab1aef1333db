package stmtql

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/stmtql/internal/types"
	"gopkg.in/yaml.v3"
)

// Instance resolves table sources from a DBML schema.
type Instance struct {
	project *dbml.Project
	// Internal index for fast lookup
	tables map[string]Table
}

// NewFromDBML creates an instance from a DBML project. Every column type
// must map to a SQL type.
func NewFromDBML(project *dbml.Project) (*Instance, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	inst := &Instance{
		project: project,
		tables:  make(map[string]Table),
	}

	for _, table := range project.Tables {
		cols := make([]Column, 0, len(table.Columns))
		for _, col := range table.Columns {
			t, err := SQLTypeOf(col.Type)
			if err != nil {
				return nil, fmt.Errorf("table %s: column %s: %w", table.Name, col.Name, err)
			}
			cols = append(cols, Col(col.Name, t))
		}
		t, err := TryNewTable(table.Name, cols...)
		if err != nil {
			return nil, err
		}
		inst.tables[table.Name] = t
	}

	slog.Debug("indexed schema", slog.Int("tables", len(inst.tables)))
	return inst, nil
}

// tablesFile is the YAML form of a schema.
type tablesFile struct {
	Project string      `yaml:"project"`
	Tables  []tableSpec `yaml:"tables"`
}

type tableSpec struct {
	Name    string       `yaml:"name"`
	Columns []columnSpec `yaml:"columns"`
}

type columnSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// NewFromYAML builds a DBML project from a YAML table listing and creates an
// instance from it.
//
//	project: shop
//	tables:
//	  - name: users
//	    columns:
//	      - {name: id, type: bigint}
//	      - {name: name, type: varchar}
func NewFromYAML(data []byte) (*Instance, error) {
	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tables YAML: %w", err)
	}
	if len(file.Tables) == 0 {
		return nil, fmt.Errorf("tables YAML defines no tables")
	}
	name := file.Project
	if name == "" {
		name = "stmtql"
	}

	project := dbml.NewProject(name)
	for _, ts := range file.Tables {
		table := dbml.NewTable(ts.Name)
		for _, cs := range ts.Columns {
			table.AddColumn(dbml.NewColumn(cs.Name, cs.Type))
		}
		project.AddTable(table)
	}
	return NewFromDBML(project)
}

// Project returns the underlying DBML project.
func (i *Instance) Project() *dbml.Project {
	return i.project
}

// Tables returns the table names in the schema, sorted.
func (i *Instance) Tables() []string {
	names := make([]string, 0, len(i.tables))
	for name := range i.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TryT returns the named table, optionally aliased, or an error if the
// schema has no such table.
func (i *Instance) TryT(name string, alias ...string) (Table, error) {
	t, ok := i.tables[name]
	if !ok {
		return Table{}, fmt.Errorf("invalid table: table '%s' not found in schema", name)
	}
	switch len(alias) {
	case 0:
		return t, nil
	case 1:
		return t.TryAs(alias[0])
	}
	return Table{}, fmt.Errorf("only one alias allowed")
}

// T returns the named table, optionally aliased.
func (i *Instance) T(name string, alias ...string) Table {
	t, err := i.TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryC returns a column of a schema table.
func (i *Instance) TryC(table, column string) (Column, error) {
	t, err := i.TryT(table)
	if err != nil {
		return Column{}, err
	}
	return t.TryC(column)
}

// C returns a column of a schema table.
func (i *Instance) C(table, column string) Column {
	c, err := i.TryC(table, column)
	if err != nil {
		panic(err)
	}
	return c
}

// SQLTypeOf maps a DBML column type to a SQL type. Length and precision
// arguments such as varchar(255) are ignored.
func SQLTypeOf(dbmlType string) (SQLType, error) {
	t := strings.ToLower(strings.TrimSpace(dbmlType))
	if idx := strings.IndexByte(t, '('); idx != -1 {
		t = strings.TrimSpace(t[:idx])
	}
	switch t {
	case "int", "integer", "int2", "int4", "smallint", "tinyint", "serial", "smallserial":
		return types.Integer, nil
	case "bigint", "int8", "bigserial":
		return types.BigInt, nil
	case "numeric", "decimal", "money":
		return types.Numeric, nil
	case "float", "float4", "float8", "real", "double", "double precision":
		return types.Double, nil
	case "text", "varchar", "char", "character", "character varying", "nvarchar", "nchar", "string", "citext":
		return types.Text, nil
	case "bool", "boolean", "bit":
		return types.Boolean, nil
	case "timestamp", "timestamptz", "datetime", "datetime2", "datetimeoffset", "timestamp with time zone", "timestamp without time zone":
		return types.Timestamp, nil
	case "date":
		return types.Date, nil
	case "uuid", "uniqueidentifier":
		return types.UUID, nil
	case "json", "jsonb":
		return types.JSON, nil
	case "bytea", "blob", "binary", "varbinary":
		return types.Bytes, nil
	}
	return types.Unknown, fmt.Errorf("unsupported column type %q", dbmlType)
}
