package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	dsn, err := mysqlDSN("user:pass@tcp(localhost:3306)/haisou")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	dsn, err = mysqlDSN("user:pass@tcp(localhost:3306)/haisou?charset=sjis")
	require.NoError(t, err)
	assert.Contains(t, dsn, "charset=sjis")
	assert.NotContains(t, dsn, "utf8mb4")

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}

func TestDialect(t *testing.T) {
	for driver, want := range map[string]string{
		"":         "sqlite3",
		"sqlite":   "sqlite3",
		"mysql":    "mysql",
		"postgres": "postgres",
	} {
		got, err := dialect(driver)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		source, _, err := migrationSource(driver)
		require.NoError(t, err)
		migrations, err := source.FindMigrations()
		require.NoError(t, err)
		assert.Len(t, migrations, 2, driver)
	}

	_, err := dialect("oracle")
	assert.Error(t, err)
}
