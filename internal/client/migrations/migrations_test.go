package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/eslconsole/internal/dbx"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := dbx.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUp_CreatesTables(t *testing.T) {
	db := openDB(t)

	require.NoError(t, Up(context.Background(), db))

	for _, name := range []string{"goose_db_version", "metadata", "exports"} {
		require.True(t, tableExists(t, db, name), "table %s", name)
	}
}

func TestUp_IsIdempotent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	require.NoError(t, Up(ctx, db))
	require.NoError(t, Up(ctx, db))
	require.True(t, tableExists(t, db, "metadata"))
}
