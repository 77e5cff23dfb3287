package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pvaldez/cadence-api/internal/config"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/platform/postgres"
	"github.com/pvaldez/cadence-api/internal/service"
	"github.com/pvaldez/cadence-api/internal/service/auth"
)

// application holds the fully wired dependency graph. Everything is
// constructed once at startup and passed by reference; there are no
// ambient globals.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	userService     service.UserService
	projectService  service.ProjectService
	sprintService   service.SprintService
	taskService     service.TaskService
	financeService  service.FinanceService
	riskService     service.RiskService
	goalService     service.GoalService
	feedbackService service.FeedbackService
}

// newApplication loads configuration, connects to the database, runs
// migrations when configured to, and wires stores into services.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	slog.SetDefault(appLogger)

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(db, cfg.Database.MigrationsDir, appLogger); err != nil {
			closeQuietly(db, appLogger)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	app := &application{
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	if err := app.wireServices(); err != nil {
		closeQuietly(db, appLogger)
		return nil, fmt.Errorf("failed to wire services: %w", err)
	}

	return app, nil
}

// wireServices builds stores and services on top of the open database
// connection.
func (app *application) wireServices() error {
	userStore := postgres.NewPostgresUserStore(app.db, app.logger)
	projectStore := postgres.NewPostgresProjectStore(app.db, app.logger)
	sprintStore := postgres.NewPostgresSprintStore(app.db, app.logger)
	taskStore := postgres.NewPostgresTaskStore(app.db, app.logger)
	timeEntryStore := postgres.NewPostgresTimeEntryStore(app.db, app.logger)
	transactionStore := postgres.NewPostgresTransactionStore(app.db, app.logger)
	invoiceStore := postgres.NewPostgresInvoiceStore(app.db, app.logger)
	riskStore := postgres.NewPostgresRiskStore(app.db, app.logger)
	goalStore := postgres.NewPostgresGoalStore(app.db, app.logger)
	feedbackStore := postgres.NewPostgresFeedbackStore(app.db, app.logger)

	jwtService, err := auth.NewJWTService(app.config.Auth)
	if err != nil {
		return err
	}
	app.jwtService = jwtService

	hasher := auth.NewBcryptHasher(app.config.Auth.BcryptCost)

	app.userService, err = service.NewUserService(userStore, hasher, jwtService, app.logger)
	if err != nil {
		return err
	}

	app.projectService, err = service.NewProjectService(projectStore, taskStore, app.logger)
	if err != nil {
		return err
	}

	app.sprintService, err = service.NewSprintService(sprintStore, projectStore, taskStore, app.logger)
	if err != nil {
		return err
	}

	app.taskService, err = service.NewTaskService(app.db, taskStore, projectStore, timeEntryStore, app.logger)
	if err != nil {
		return err
	}

	app.financeService, err = service.NewFinanceService(
		app.db, transactionStore, invoiceStore, projectStore, timeEntryStore, app.logger)
	if err != nil {
		return err
	}

	app.riskService, err = service.NewRiskService(riskStore, projectStore, app.logger)
	if err != nil {
		return err
	}

	app.goalService, err = service.NewGoalService(goalStore, app.logger)
	if err != nil {
		return err
	}

	app.feedbackService, err = service.NewFeedbackService(feedbackStore, userStore, app.logger)
	if err != nil {
		return err
	}

	return nil
}

// run starts the HTTP server and blocks until shutdown.
func (app *application) run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		closeQuietly(app.db, app.logger)
	}
}

func closeQuietly(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("failed to close database connection", slog.String("error", err.Error()))
	}
}
