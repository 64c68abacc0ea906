package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RubachokBoss/school-backend/internal/app"
	"github.com/RubachokBoss/school-backend/internal/config"
	"github.com/RubachokBoss/school-backend/internal/database"
	"github.com/RubachokBoss/school-backend/internal/repository"
	"github.com/RubachokBoss/school-backend/internal/repository/memory"
	"github.com/RubachokBoss/school-backend/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	migrateDirection := migrateCmd.String("direction", "up", "direction of migration (up/down)")

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			migrateCmd.Parse(os.Args[2:])
			if err := runMigrations(*migrateDirection); err != nil {
				logger.New().Fatal().Err(err).Msg("Migration failed")
			}
			return
		case "serve":
		default:
			logger.New().Fatal().Str("command", os.Args[1]).Msg("Unknown command. Use 'serve' or 'migrate'")
		}
	}

	bootLog := logger.New()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)

	store, err := openStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	application, err := app.New(cfg, log, store)
	if err != nil {
		store.Close()
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	go func() {
		if err := application.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run application")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("School backend stopped")
}

func openStore(cfg *config.Config, log zerolog.Logger) (repository.Store, error) {
	if cfg.Database.Driver == "memory" {
		log.Warn().Msg("Using in-memory database, data is lost on restart")
		return memory.NewStore(), nil
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Msg("Database connection established")

	return repository.NewPostgresStore(db, log), nil
}

func runMigrations(direction string) error {
	log := logger.New()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}

	migrator, err := database.NewMigrator(db)
	if err != nil {
		db.Close()
		return err
	}
	defer migrator.Close()

	switch direction {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	default:
		return fmt.Errorf("invalid migration direction %q, use 'up' or 'down'", direction)
	}
	if err != nil {
		return err
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Info().
		Str("direction", direction).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Migrations applied successfully")

	return nil
}
