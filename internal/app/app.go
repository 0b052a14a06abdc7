package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/habitboard/habitboard/internal/clock"
	"github.com/habitboard/habitboard/internal/config"
	"github.com/habitboard/habitboard/internal/db"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/service"
	"github.com/habitboard/habitboard/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	AuthService       *service.AuthService
	UserService       *service.UserService
	DomainService     *service.DomainService
	CompletionService *service.CompletionService
	GoalService       *service.GoalService
	StreakService     *service.StreakService
	AnalyticsService  *service.AnalyticsService
	ExportService     *service.ExportService
}

// New opens the database, applies migrations and wires services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.MigrateUp(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	archive, err := storage.New(ctx, cfg)
	if errors.Is(err, storage.ErrNotConfigured) {
		archive = nil
	} else if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return Wire(cfg, database, archive, clock.System{Location: cfg.Location()}), nil
}

// Wire builds the services on top of an open database. archive may be nil.
func Wire(cfg *config.Config, database *sqlx.DB, archive storage.Storage, clk clock.Clock) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	domainRepository := repository.NewDomainRepository(database)
	completionRepository := repository.NewCompletionRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	streakRepository := repository.NewStreakRepository(database)

	// Services
	streakService := service.NewStreakService(domainRepository, completionRepository, goalRepository, streakRepository, clk)

	return &App{
		Cfg:               cfg,
		DB:                database,
		AuthService:       service.NewAuthService(userRepository, clk, cfg.JWTSecret, cfg.JWTExpiry),
		UserService:       service.NewUserService(userRepository),
		DomainService:     service.NewDomainService(domainRepository, clk),
		CompletionService: service.NewCompletionService(domainRepository, completionRepository, streakService, clk),
		GoalService: service.NewGoalService(
			domainRepository,
			completionRepository,
			goalRepository,
			streakRepository,
			streakService,
			clk,
			cfg.HistoryWeeks,
		),
		StreakService:    streakService,
		AnalyticsService: service.NewAnalyticsService(userRepository, domainRepository, completionRepository, clk),
		ExportService: service.NewExportService(
			userRepository,
			domainRepository,
			completionRepository,
			goalRepository,
			archive,
			clk,
		),
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
