// Package sqlquery runs SQL statements against a database reachable through
// a registered database/sql driver.
package sqlquery

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	// Drivers available to the dsn/driver call settings.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/systemstart/testflow/pkg/plugin"
)

// TypeID is the step type this plugin registers under.
const TypeID = "SQL_QUERY"

type call struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Query  string `yaml:"query"`
	Args   []any  `yaml:"args"`
}

// Plugin opens a fresh connection per step, runs one statement, and shapes
// the result so that save and validate directives can address it by column.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Defaults returns the default call tree.
func (p *Plugin) Defaults() map[string]any {
	return map[string]any{
		"driver": "${SQL_DRIVER}",
		"dsn":    "${SQL_DSN}",
		"query":  "",
		"args":   []any{},
	}
}

// Execute runs the statement. Row-returning statements yield
// {rows: [...], count: n}; everything else yields {rows_affected: n}.
func (p *Plugin) Execute(ctx context.Context, callTree map[string]any) (any, error) {
	var c call
	if err := plugin.DecodeCall(callTree, &c); err != nil {
		return nil, err
	}
	if c.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if c.Driver == "" {
		return nil, fmt.Errorf("driver is required")
	}
	if c.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	db, err := sql.Open(c.Driver, c.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", c.Driver, err)
	}
	defer db.Close()

	slog.Debug("executing statement", "driver", c.Driver, "query", c.Query)

	if returnsRows(c.Query) {
		return queryRows(ctx, db, c.Query, c.Args)
	}

	res, err := db.ExecContext(ctx, c.Query, c.Args...)
	if err != nil {
		return nil, fmt.Errorf("executing statement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		affected = 0
	}
	return map[string]any{"rows_affected": affected}, nil
}

// returnsRows classifies a statement by its leading keyword.
func returnsRows(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}
	head := strings.ToUpper(fields[0])
	switch head {
	case "SELECT", "SHOW", "WITH", "EXPLAIN", "DESCRIBE":
		return true
	}
	return false
}

func queryRows(ctx context.Context, db *sql.DB, query string, args []any) (any, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	result := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			// MySQL reports text columns as []byte.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return map[string]any{"rows": result, "count": len(result)}, nil
}
