package snapshot

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/servicediff/internal/core"
)

// Querier is the read-only subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx
// the Postgres source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ConnectFunc opens a Querier for a connection string. The returned func
// releases it.
type ConnectFunc func(ctx context.Context, connString string) (Querier, func(), error)

// connectPool is the default ConnectFunc.
func connectPool(ctx context.Context, connString string) (Querier, func(), error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pool, pool.Close, nil
}

// IsPostgres reports whether source is a Postgres URL.
func IsPostgres(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// splitPostgresSource separates the connection string from the table named
// in the URL fragment: "postgres://host/db#schema.table".
func splitPostgresSource(source string) (string, pgx.Identifier, error) {
	i := strings.LastIndex(source, "#")
	if i < 0 || i == len(source)-1 {
		return "", nil, fmt.Errorf("postgres source must name a table after '#', e.g. postgres://host/db#inventory")
	}

	parts := strings.Split(source[i+1:], ".")
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return "", nil, fmt.Errorf("postgres source has an invalid table name %q", source[i+1:])
		}
	}
	return source[:i], pgx.Identifier(parts), nil
}

// QueryTable reads every row of table. When orderBy is set the rows are
// sorted by that column; otherwise they come back in whatever order Postgres
// returns them, which is stable only while the table is not modified.
func QueryTable(ctx context.Context, q Querier, table pgx.Identifier, orderBy string) (core.Table, error) {
	query := "SELECT * FROM " + table.Sanitize()
	if orderBy != "" {
		query += " ORDER BY " + pgx.Identifier{orderBy}.Sanitize()
	}

	rows, err := q.Query(ctx, query)
	if err != nil {
		return core.Table{}, fmt.Errorf("query %s: %w", table.Sanitize(), err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}

	var data [][]core.Cell
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return core.Table{}, fmt.Errorf("scan %s: %w", table.Sanitize(), err)
		}
		cells := make([]core.Cell, len(values))
		for i, v := range values {
			cells[i] = cellFromValue(v)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return core.Table{}, fmt.Errorf("read %s: %w", table.Sanitize(), err)
	}

	return core.NewTable(columns, data), nil
}

// cellFromValue converts a decoded column value. Only string values are text;
// everything else is formatted and left untrimmed.
func cellFromValue(v any) core.Cell {
	switch x := v.(type) {
	case nil:
		return core.Null()
	case string:
		return core.Text(x)
	case []byte:
		return core.Text(string(x))
	case [16]byte:
		return core.Other(uuid.UUID(x).String())
	case time.Time:
		return core.Other(x.Format(time.RFC3339))
	case driver.Valuer:
		val, err := x.Value()
		if err != nil || val == nil {
			return core.Null()
		}
		if _, loops := val.(driver.Valuer); loops {
			return core.Other(fmt.Sprint(val))
		}
		c := cellFromValue(val)
		if c.Valid {
			c.Kind = core.KindOther
		}
		return c
	case fmt.Stringer:
		return core.Other(x.String())
	default:
		return core.Other(fmt.Sprint(x))
	}
}
