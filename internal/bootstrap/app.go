package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "seedrowz-backend/internal/auth"
	"seedrowz-backend/internal/evaluations"
	"seedrowz-backend/internal/llm"
	"seedrowz-backend/internal/services/health"
	"seedrowz-backend/internal/shared/auth"
	"seedrowz-backend/internal/shared/config"
	"seedrowz-backend/internal/shared/server"
	"seedrowz-backend/internal/shared/storage/db"
	"seedrowz-backend/internal/shared/telemetry"
	"seedrowz-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Tokens             *auth.TokenService
	UsersRepo          users.Repo
	EvaluationsRepo    evaluations.Repo
	UsersService       *users.Service
	EvaluationsService *evaluations.Service
	GoogleAuth         *googleauth.GoogleService
}

// Options lets callers replace the AI collaborators, mainly in tests.
type Options struct {
	AISettings llm.SettingsSource
	AIFactory  llm.Factory
}

// Build connects storage, runs migrations and wires services and routes.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" && !cfg.IsDevLike() {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Tokens: auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
	}
	buildServices(app, opts)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Tokens:            app.Tokens,
		Health:            health.NewService(pinger(app.DB)),
		EvaluationHandler: evaluations.NewHandler(app.EvaluationsService),
		UserHandler:       users.NewHandler(app.UsersService),
		GoogleAuth:        app.GoogleAuth,
	})

	if settings := app.EvaluationsService.Settings(); !settings.Configured() {
		telemetry.Warn("bootstrap.ai_not_configured", map[string]any{
			"provider": settings.Provider,
		})
	}
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App, opts Options) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.EvaluationsRepo = &evaluations.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.EvaluationsRepo = evaluations.NewMemoryRepo()
	}

	settings := opts.AISettings
	if settings == nil {
		settings = llm.EnvSettings
	}
	factory := opts.AIFactory
	if factory == nil {
		factory = llm.NewClient
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Tokens)
	app.EvaluationsService = evaluations.NewService(app.EvaluationsRepo, settings, factory)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}

func pinger(sqlDB *sql.DB) health.Pinger {
	if sqlDB == nil {
		return nil
	}
	return sqlDB
}
