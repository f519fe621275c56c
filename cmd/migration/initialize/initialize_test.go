package initialize

import (
	"testing"

	"haisou/internal/database"
	"haisou/internal/database/dbtest"
	"haisou/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTables(t *testing.T) {
	cfg := dbtest.Config(t)
	db, err := database.New(cfg)
	require.NoError(t, err)
	defer db.Close()

	log := logger.New("initialize_test")
	require.NoError(t, InitializeTables(db, cfg, log))
	require.NoError(t, InitializeTables(db, cfg, log), "a second run is a no-op")

	require.NoError(t, db.SQL.Exec("DROP TABLE field_test").Error)
	err = InitializeTables(db, cfg, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field_test: table missing")
}
