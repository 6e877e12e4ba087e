// @title                       Task Manager API
// @version                     1.0
// @description                 Multi-user task management backend with JWT authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "task_manager/docs"
	"task_manager/internal/config"
	"task_manager/internal/handlers"
	"task_manager/internal/logger"
	"task_manager/internal/repository"
	"task_manager/internal/repository/db"
	"task_manager/internal/server"
	"task_manager/internal/service"
	"task_manager/internal/telemetry"

	"github.com/gin-gonic/gin"
)

const defaultShutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config.yml (defaults to configs/config.yml)")
	flag.Parse()

	// load config.yml + TASKS_* env
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleEncoding).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	if cfg.Auth.GeneratedSecret {
		log.Warnw("auth.secret is not set; using a random secret, tokens will not survive a restart")
	}
	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalw("failed to init tracing", "err", err)
	}

	// open DB
	conn, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}

	// wire dependencies
	services, err := newServices(cfg, conn)
	if err != nil {
		log.Fatalw("failed to init services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log.Named("http"), handlers.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		ServiceName:    cfg.Telemetry.ServiceName,
		TokenTTL:       cfg.Auth.TokenTTL,
	})

	// start HTTP server
	srv := server.New(cfg.Server, apiHandler.InitRoutes())
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "addr", srv.Addr(), "db_driver", cfg.DB.Driver)
		errCh <- srv.Run()
	}()

	select {
	case <-ctx.Done():
		log.Infow("shutting down server...")
	case err := <-errCh:
		if err != nil {
			log.Errorw("error running server", "err", err)
		}
	}

	// graceful shutdown
	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warnw("failed to flush traces", "err", err)
	}
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close database", "err", err)
	}
	log.Infow("server stopped")
}

// openDB opens the configured database and ensures the schema exists.
func openDB(cfg config.DB, log *logger.Logger) (*sql.DB, error) {
	if cfg.Driver == db.DriverSQLite && strings.TrimSpace(cfg.Path) == "" {
		log.Infow("db.path not set in config; using default file", "default", db.DefaultSQLitePath)
	}
	return db.InitDB(db.Options{
		Driver:       cfg.Driver,
		Path:         cfg.Path,
		DSN:          cfg.DSN,
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
		MaxIdleTime:  cfg.MaxIdleTime,
	})
}

func newServices(cfg *config.Config, conn *sql.DB) (*service.Service, error) {
	tokens, err := service.NewTokenManager(service.TokenConfig{
		Secret: []byte(cfg.Auth.Secret),
		TTL:    cfg.Auth.TokenTTL,
		Issuer: cfg.Auth.Issuer,
	})
	if err != nil {
		return nil, err
	}
	return service.NewService(
		repository.NewRepository(conn, cfg.DB.Driver),
		service.NewPasswordHasher(cfg.Auth.BcryptCost),
		tokens,
	), nil
}
