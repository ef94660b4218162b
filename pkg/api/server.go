package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"todoapi/internal/adapter/database/postgres"
	pgrepo "todoapi/internal/adapter/database/postgres/repository"
	"todoapi/internal/adapter/database/sqlite"
	sqliterepo "todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/config"
	"todoapi/pkg/logging"
	"todoapi/pkg/telemetry"
	"todoapi/pkg/token"
)

// StartServer wires the store, services, and router, then blocks on
// ListenAndServe.
func StartServer(cfg *config.AppConfig, metrics *telemetry.AppMetrics, logger *logging.AppLogger) error {
	userRepo, todoRepo, err := buildRepositories(cfg)

	if err != nil {
		return err
	}

	tokenSvc := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(userRepo, tokenSvc)
	todoSvc := service.NewTodoService(todoRepo)

	handlers := Handlers{
		Auth: handler.NewAuthHandler(authSvc, metrics),
		Todo: handler.NewTodoHandler(todoSvc, metrics),
	}

	router := SetupRouter(handlers, authSvc, metrics, logger)

	slog.Info("Server starting",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"store", storeKind(cfg))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
		return err
	}

	return nil
}

func buildRepositories(cfg *config.AppConfig) (port.UserRepository, port.TodoRepository, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(context.Background(), cfg.DatabaseURL)

		if err != nil {
			return nil, nil, err
		}

		return pgrepo.NewUserRepository(db), pgrepo.NewTodoRepository(db), nil
	}

	db := sqlite.NewDB(sqlite.New())

	return sqliterepo.NewUserRepository(db), sqliterepo.NewTodoRepository(db), nil
}

func storeKind(cfg *config.AppConfig) string {
	if cfg.DatabaseURL != "" {
		return "postgres"
	}

	return "sqlite"
}
