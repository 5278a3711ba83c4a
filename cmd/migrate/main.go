// Package main применяет и откатывает миграции схемы магазина.
//
// Использование:
//
//	migrate -cmd up
//	migrate -cmd down
//	migrate -cmd version
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/shop-backend/internal/config"
	"github.com/magabrotheeeer/shop-backend/internal/migrations"
)

func main() {
	command := flag.String("cmd", "up", "up, down or version")
	path := flag.String("path", "", "migrations directory (overrides config)")
	flag.Parse()

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	migrationsPath := cfg.MigrationsPath
	if *path != "" {
		migrationsPath = *path
	}

	db, err := sql.Open("pgx", cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to open database", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := run(db, *command, migrationsPath, logger); err != nil {
		logger.Error("migration failed", slog.String("cmd", *command), slog.Any("err", err))
		os.Exit(1)
	}
}

func run(db *sql.DB, command, path string, logger *slog.Logger) error {
	switch command {
	case "up":
		if err := migrations.Run(db, path); err != nil {
			return err
		}
	case "down":
		if err := migrations.Rollback(db, path); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	version, dirty, err := migrations.Version(db, path)
	if err != nil {
		return err
	}
	logger.Info("schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
