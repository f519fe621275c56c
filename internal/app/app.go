package app

import (
	"reflect"

	"haisou/config"
	"haisou/internal/database"
	"haisou/internal/logger"
	. "haisou/internal/models"
	"haisou/internal/repositories"
	"haisou/internal/services"
)

type App struct {
	Database database.DB
	Config   config.Config

	// Services
	TransactionService       *services.TransactionService
	CacheInvalidationService *services.CacheInvalidationService

	// Repositories
	KiriRepo      repositories.KiriRepository
	HaiinfoRepo   repositories.HaiinfoRepository
	NameMstRepo   repositories.NameMstRepository
	IntTestRepo   repositories.RecordRepository[IntTest]
	CharTestRepo  repositories.RecordRepository[CharTest]
	DateTestRepo  repositories.RecordRepository[DateTest]
	FieldTestRepo repositories.RecordRepository[FieldTest]
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return NewWithConfig(config)
}

func NewWithConfig(config config.Config) (*App, error) {
	logger.SetLevel(config.SlogLevel())
	log := logger.New("app").Function("NewWithConfig")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	app := &App{
		Database:                 db,
		Config:                   config,
		TransactionService:       services.NewTransactionService(db),
		CacheInvalidationService: services.NewCacheInvalidationService(db),
		KiriRepo:                 repositories.NewKiri(db),
		HaiinfoRepo:              repositories.NewHaiinfo(db),
		NameMstRepo:              repositories.NewNameMst(db, config.NameCacheTTL),
		IntTestRepo:              repositories.NewIntTest(db),
		CharTestRepo:             repositories.NewCharTest(db),
		DateTestRepo:             repositories.NewDateTest(db),
		FieldTestRepo:            repositories.NewFieldTest(db),
	}

	if err := app.validate(); err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []struct {
		name  string
		value any
	}{
		{"TransactionService", a.TransactionService},
		{"CacheInvalidationService", a.CacheInvalidationService},
		{"KiriRepo", a.KiriRepo},
		{"HaiinfoRepo", a.HaiinfoRepo},
		{"NameMstRepo", a.NameMstRepo},
		{"IntTestRepo", a.IntTestRepo},
		{"CharTestRepo", a.CharTestRepo},
		{"DateTestRepo", a.DateTestRepo},
		{"FieldTestRepo", a.FieldTestRepo},
	}

	for _, check := range nilChecks {
		if isNil(check.value) {
			return log.ErrMsg("nil check failed: " + check.name)
		}
	}

	return nil
}

// isNil also catches typed nil pointers held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func (a *App) Close() error {
	return a.Database.Close()
}
