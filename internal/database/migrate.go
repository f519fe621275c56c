package database

import (
	"embed"
	"fmt"
	"time"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations
var migrationFS embed.FS

const MigrationTable = "haisou_migrations"

func init() {
	migrate.SetTable(MigrationTable)
}

type MigrationStatus struct {
	ID        string
	Applied   bool
	AppliedAt *time.Time
}

// dialect maps a configured driver to the sql-migrate dialect name, which is
// also the migrations subdirectory.
func dialect(driver string) (string, error) {
	switch driver {
	case "", "sqlite":
		return "sqlite3", nil
	case "mysql":
		return "mysql", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

func migrationSource(driver string) (migrate.MigrationSource, string, error) {
	d, err := dialect(driver)
	if err != nil {
		return nil, "", err
	}
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFS,
		Root:       "migrations/" + d,
	}, d, nil
}

// Migrate applies (Up) or rolls back (Down) migrations. steps limits the number
// of steps; 0 means all of them.
func (s *DB) Migrate(direction migrate.MigrationDirection, steps int) (int, error) {
	log := s.log.Function("Migrate")

	source, d, err := migrationSource(s.Driver)
	if err != nil {
		return 0, log.Err("failed to resolve migration source", err, "driver", s.Driver)
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	n, err := migrate.ExecMax(sqlDB, d, source, direction, steps)
	if err != nil {
		return n, log.Err("failed to run migrations", err, "dialect", d, "applied", n)
	}

	log.Info("Migrations complete", "dialect", d, "applied", n, "direction", directionName(direction))
	return n, nil
}

func (s *DB) MigrationStatus() ([]MigrationStatus, error) {
	log := s.log.Function("MigrationStatus")

	source, d, err := migrationSource(s.Driver)
	if err != nil {
		return nil, log.Err("failed to resolve migration source", err, "driver", s.Driver)
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return nil, log.Err("failed to get database from GORM", err)
	}

	migrations, err := source.FindMigrations()
	if err != nil {
		return nil, log.Err("failed to list migrations", err)
	}

	records, err := migrate.GetMigrationRecords(sqlDB, d)
	if err != nil {
		return nil, log.Err("failed to read migration records", err)
	}

	applied := make(map[string]time.Time, len(records))
	for _, r := range records {
		applied[r.Id] = r.AppliedAt
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		status := MigrationStatus{ID: m.Id}
		if at, ok := applied[m.Id]; ok {
			status.Applied = true
			status.AppliedAt = &at
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func directionName(direction migrate.MigrationDirection) string {
	if direction == migrate.Down {
		return "down"
	}
	return "up"
}
