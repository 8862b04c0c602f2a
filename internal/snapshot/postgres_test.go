package snapshot

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/servicediff/internal/core"
)

func TestSplitPostgresSource(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantConn string
		wantID   pgx.Identifier
		wantErr  bool
	}{
		{
			name:     "schema and table",
			source:   "postgres://ops@db.internal:5432/inventory?sslmode=disable#public.services",
			wantConn: "postgres://ops@db.internal:5432/inventory?sslmode=disable",
			wantID:   pgx.Identifier{"public", "services"},
		},
		{
			name:     "table only",
			source:   "postgresql://localhost/inv#services_2026_09",
			wantConn: "postgresql://localhost/inv",
			wantID:   pgx.Identifier{"services_2026_09"},
		},
		{name: "no fragment", source: "postgres://localhost/inv", wantErr: true},
		{name: "empty fragment", source: "postgres://localhost/inv#", wantErr: true},
		{name: "empty part", source: "postgres://localhost/inv#public.", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, id, err := splitPostgresSource(tt.source)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantConn, conn)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://localhost/db#t"))
	assert.True(t, IsPostgres("PostgreSQL://localhost/db#t"))
	assert.False(t, IsPostgres("/data/postgres.csv"))
	assert.False(t, IsPostgres("s3://bucket/new.csv"))
}

func TestQueryTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "public"."services" ORDER BY "Name"`)).
		WillReturnRows(pgxmock.NewRows([]string{"Name", "Status", "replicas"}).
			AddRow("billing_36fdd424", " Running ", int64(3)).
			AddRow("auth", nil, nil))

	table, err := QueryTable(context.Background(), mock, pgx.Identifier{"public", "services"}, "Name")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, []string{"Name", "Status", "replicas"}, table.Columns())
	require.Equal(t, 2, table.Len())

	rows := table.Rows()
	assert.Equal(t, " Running ", rows[0].Status())
	assert.Equal(t, "3", rows[0].Value("replicas"))

	status, _ := rows[1].Get("Status")
	assert.False(t, status.Valid)
}

func TestQueryTable_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services"`)).
		WillReturnError(errors.New(`relation "services" does not exist`))

	_, err = QueryTable(context.Background(), mock, pgx.Identifier{"services"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `query "services"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCellFromValue(t *testing.T) {
	id := uuid.MustParse("6f1c2a7e-0d4b-4c3e-9a51-2b7f0c8d9e10")
	at := time.Date(2026, 9, 30, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want core.Cell
	}{
		{"nil", nil, core.Null()},
		{"string", "Running", core.Text("Running")},
		{"bytes", []byte("Stopped"), core.Text("Stopped")},
		{"uuid", [16]byte(id), core.Other(id.String())},
		{"time", at, core.Other("2026-09-30T23:00:00Z")},
		{"int", int64(42), core.Other("42")},
		{"bool", true, core.Other("true")},
		{"valid text", pgtype.Text{String: " x ", Valid: true}, core.Other(" x ")},
		{"null text", pgtype.Text{}, core.Null()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellFromValue(tt.in))
		})
	}
}
