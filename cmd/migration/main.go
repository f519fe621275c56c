package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"haisou/cmd/migration/initialize"
	"haisou/cmd/migration/seed"
	"haisou/config"
	"haisou/internal/app"
	"haisou/internal/database"
	"haisou/internal/logger"
	"haisou/internal/repositories"

	"github.com/olekukonko/tablewriter"
	migrate "github.com/rubenv/sql-migrate"
)

const usage = `usage: migration [-config file] [-steps n] <command>

commands:
  up           apply pending migrations, verify the schema, then seed when
               SEED_ON_MIGRATE is set. With -steps n only n migrations are
               applied: the schema is then partial, so verify and seed are
               skipped; run "verify" and "seed" once it is complete
  down         roll back migrations (all, or -steps n) and flush the cache
  status       show applied and pending migrations
  verify       compare models with the live schema
  seed         insert missing name master rows
  names        list the name master
  flush-cache  drop every cached name
`

func main() {
	var (
		configPath = flag.String("config", "", "config file (defaults to ./.env and HAISOU_* variables)")
		steps      = flag.Int("steps", 0, "limit up/down to n migrations (0 = all)")
	)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *configPath, *steps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(command, configPath string, steps int) error {
	log := logger.New("migration").Function(command)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return log.Err("failed to load config", err)
	}

	a, err := app.NewWithConfig(cfg)
	if err != nil {
		return log.Err("failed to open database", err)
	}
	defer a.Close()

	db := a.Database

	ctx := context.Background()

	switch command {
	case "up":
		if steps > 0 {
			if _, err := db.Migrate(migrate.Up, steps); err != nil {
				return err
			}
			log.Info("Partial migration applied, skipping verify and seed", "steps", steps)
			return nil
		}
		if err := initialize.InitializeTables(db, cfg, log); err != nil {
			return err
		}
		if cfg.SeedOnMigrate {
			_, err := seed.Seed(ctx, db, log)
			return err
		}
		return nil
	case "down":
		if _, err := db.Migrate(migrate.Down, steps); err != nil {
			return err
		}
		// cached names may describe rows that no longer exist
		return db.FlushAllCaches()
	case "flush-cache":
		return db.FlushAllCaches()
	case "status":
		return printStatus(db)
	case "verify":
		issues, err := db.VerifySchema()
		if err != nil {
			return err
		}
		for _, issue := range issues {
			fmt.Println(issue.String())
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d schema issue(s)", len(issues))
		}
		fmt.Println("schema matches models")
		return nil
	case "seed":
		n, err := seed.Seed(ctx, db, log)
		if err != nil {
			return err
		}
		fmt.Printf("inserted %d name(s)\n", n)
		return nil
	case "names":
		return printNames(ctx, a.NameMstRepo)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.InitConfigFile(path)
	}
	return config.InitConfig()
}

func printStatus(db database.DB) error {
	statuses, err := db.MigrationStatus()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Migration", "Applied"})
	for _, s := range statuses {
		applied := "no"
		if s.AppliedAt != nil {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		if err := table.Append([]string{s.ID, applied}); err != nil {
			return err
		}
	}
	return table.Render()
}

func printNames(ctx context.Context, repo repositories.NameMstRepository) error {
	names, err := repo.List(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"コード", "名称", "表示順", "備考"})
	for _, n := range names {
		if err := table.Append([]string{n.DisplayCode(), n.Nm, strconv.Itoa(n.Sort), n.Memo}); err != nil {
			return err
		}
	}
	return table.Render()
}
