package initialize

import (
	"strings"

	"haisou/config"
	"haisou/internal/database"
	"haisou/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
)

// InitializeTables brings the schema up to date and checks that every model
// matches a table.
func InitializeTables(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing tables", "driver", config.DatabaseDriver)

	if _, err := db.Migrate(migrate.Up, 0); err != nil {
		return log.Err("failed to apply migrations", err)
	}

	issues, err := db.VerifySchema()
	if err != nil {
		return log.Err("failed to verify schema", err)
	}
	if len(issues) > 0 {
		lines := make([]string, 0, len(issues))
		for _, issue := range issues {
			lines = append(lines, issue.String())
		}
		return log.ErrMsg("schema does not match models: " + strings.Join(lines, ", "))
	}

	log.Info("Table initialization complete")
	return nil
}
