// Package dialects resolves stmtql renderers by name.
package dialects

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zoobzio/stmtql"
	"github.com/zoobzio/stmtql/mssql"
	"github.com/zoobzio/stmtql/mysql"
	"github.com/zoobzio/stmtql/postgres"
	"github.com/zoobzio/stmtql/sqlite"
)

// Factory creates a renderer with the given options.
type Factory func(opts ...stmtql.RenderOption) stmtql.Renderer

var registry = map[string]Factory{
	postgres.Name: func(opts ...stmtql.RenderOption) stmtql.Renderer { return postgres.New(opts...) },
	sqlite.Name:   func(opts ...stmtql.RenderOption) stmtql.Renderer { return sqlite.New(opts...) },
	mysql.Name:    func(opts ...stmtql.RenderOption) stmtql.Renderer { return mysql.New(opts...) },
	mssql.Name:    func(opts ...stmtql.RenderOption) stmtql.Renderer { return mssql.New(opts...) },
}

var aliases = map[string]string{
	"postgresql": postgres.Name,
	"pg":         postgres.Name,
	"sqlite3":    sqlite.Name,
	"mariadb":    mysql.Name,
	"sqlserver":  mssql.Name,
}

// Lookup returns the renderer registered under name. Names are
// case-insensitive and common aliases are accepted.
func Lookup(name string, opts ...stmtql.RenderOption) (stmtql.Renderer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	factory, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(opts...), nil
}

// Names returns the canonical dialect names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
