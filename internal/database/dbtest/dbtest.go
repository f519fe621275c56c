// Package dbtest opens a migrated SQLite database for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"haisou/config"
	"haisou/internal/database"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/require"
)

func Config(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Environment:    "test",
		DatabaseDriver: config.DriverSQLite,
		DatabaseDbPath: filepath.Join(t.TempDir(), "test.db"),
	}
}

// New returns a database with every migration applied. It is closed when
// the test ends.
func New(t *testing.T) database.DB {
	t.Helper()

	db, err := database.New(Config(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Migrate(migrate.Up, 0)
	require.NoError(t, err)

	return db
}
