package snapshot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/JonMunkholm/servicediff/internal/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoader_LoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "new.csv", "Name,Status\nbilling_36fdd424,Running\nauth,Stopped\n")

	table, err := NewLoader().Load(context.Background(), p)
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, "auth", table.Rows()[1].Name())
}

func TestLoader_LoadRelativePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old.tsv", "Name\tStatus\nsearch\tRunning\n")
	t.Chdir(dir)

	table, err := NewLoader().Load(context.Background(), "old.tsv")
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoader_LoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.csv")
}

func TestLoader_UnsupportedFormatFailsBeforeIO(t *testing.T) {
	// The file does not exist; the extension check must fail first.
	_, err := NewLoader().Load(context.Background(), "/nowhere/inventory.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}

func TestLoader_LoadMemoryURL(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	url := "mem://localhost/servicediff/loader/current.csv"
	require.NoError(t, fs.Upload(ctx, url, 0o644, strings.NewReader("Name,Status\nsvc_a1,Running\n")))

	table, err := NewLoader(WithFS(fs)).Load(ctx, url)
	require.NoError(t, err)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, "svc_a1", table.Rows()[0].Name())
}

func TestLoader_LoadWorkbookSheet(t *testing.T) {
	data := workbook(t, map[string][][]any{
		"Summary": {{"Total"}},
		"Current": {{"Name", "Status"}, {"a", "Running"}},
	}, "Summary", "Current")

	dir := t.TempDir()
	p := filepath.Join(dir, "new.xlsx")
	require.NoError(t, os.WriteFile(p, data, 0o644))

	table, err := NewLoader(WithSheet("Current")).Load(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoader_LoadPostgres(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "inventory"."current" ORDER BY "Name"`)).
		WillReturnRows(pgxmock.NewRows([]string{"Name", "Status"}).AddRow("svc", "Running"))

	var gotConn string
	released := false
	connect := func(_ context.Context, conn string) (Querier, func(), error) {
		gotConn = conn
		return mock, func() { released = true }, nil
	}

	loader := NewLoader(WithConnector(connect), WithOrderBy("Name"))
	table, err := loader.Load(context.Background(), "postgres://ops@db/inv#inventory.current")
	require.NoError(t, err)

	assert.Equal(t, "postgres://ops@db/inv", gotConn)
	assert.True(t, released)
	assert.Equal(t, 1, table.Len())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoader_LoadPostgresConnectError(t *testing.T) {
	connect := func(context.Context, string) (Querier, func(), error) {
		return nil, nil, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	}

	_, err := NewLoader(WithConnector(connect)).Load(context.Background(), "postgres://db/inv#services")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestLoader_Decode(t *testing.T) {
	loader := NewLoader()

	table, err := loader.Decode("upload.CSV", bytes.NewBufferString("Name,Status\na,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = loader.Decode("upload.txt", bytes.NewBufferString("x"))
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}
