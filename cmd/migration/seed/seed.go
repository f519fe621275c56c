package seed

import (
	"context"
	_ "embed"
	"fmt"

	"haisou/internal/database"
	"haisou/internal/logger"
	. "haisou/internal/models"
	"haisou/internal/repositories"
	"haisou/internal/services"

	"gopkg.in/yaml.v3"
)

//go:embed names.yaml
var namesFixture []byte

type fixture struct {
	Names []nameEntry `yaml:"names"`
}

type nameEntry struct {
	Cd    int    `yaml:"cd"`
	Nm    string `yaml:"nm"`
	Digit int    `yaml:"digit"`
	Sort  int    `yaml:"sort"`
	Memo  string `yaml:"memo"`
}

// LoadNames parses a name master fixture. An empty document yields no names.
func LoadNames(data []byte) ([]NameMst, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse names fixture: %w", err)
	}

	seen := make(map[int]bool, len(f.Names))
	names := make([]NameMst, 0, len(f.Names))
	for _, e := range f.Names {
		if seen[e.Cd] {
			return nil, fmt.Errorf("names fixture: duplicate code %d", e.Cd)
		}
		seen[e.Cd] = true

		n := NameMst{Cd: e.Cd, Nm: e.Nm, Digit: e.Digit, Sort: e.Sort, Memo: e.Memo}
		if err := Validate(&n); err != nil {
			return nil, fmt.Errorf("names fixture: code %d: %w", e.Cd, err)
		}
		names = append(names, n)
	}
	return names, nil
}

// Seed inserts the embedded name master rows that are not present yet.
// Existing rows are left untouched. It returns the number inserted.
func Seed(ctx context.Context, db database.DB, log logger.Logger) (int, error) {
	return SeedNames(ctx, db, namesFixture, log)
}

func SeedNames(ctx context.Context, db database.DB, data []byte, log logger.Logger) (int, error) {
	log = log.Function("seed")
	log.Info("Seeding name master")

	names, err := LoadNames(data)
	if err != nil {
		return 0, log.Err("failed to load names fixture", err)
	}

	repo := repositories.NewNameMst(db, 0)
	tx := services.NewTransactionService(db)

	inserted := 0
	err = tx.Execute(ctx, func(txCtx context.Context) error {
		for i := range names {
			name := names[i]
			exists, err := repo.Exists(txCtx, name.Cd)
			if err != nil {
				return err
			}
			if exists {
				log.Info("Name already exists", "cd", name.Cd)
				continue
			}
			log.Info("Seeding name", "cd", name.Cd, "nm", name.Nm)
			if err := repo.Create(txCtx, &name); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, log.Err("failed to seed name master", err)
	}

	log.Info("Seeding complete", "inserted", inserted)
	return inserted, nil
}
