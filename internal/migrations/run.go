// Package migrations применяет SQL-миграции схемы магазина через golang-migrate.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Источник миграций из файловой системы.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func newMigrate(db *sql.DB, path string) (*migrate.Migrate, error) {
	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return nil, err
	}
	return migrate.NewWithDatabaseInstance("file://"+path, "pgx_v5", driver)
}

// Run применяет все непримененные миграции из каталога path.
// Отсутствие новых миграций ошибкой не считается.
func Run(db *sql.DB, path string) error {
	const op = "migrations.Run"
	m, err := newMigrate(db, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Rollback откатывает последнюю применённую миграцию.
func Rollback(db *sql.DB, path string) error {
	const op = "migrations.Rollback"
	m, err := newMigrate(db, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Version возвращает текущую версию схемы и признак незавершённой миграции.
func Version(db *sql.DB, path string) (uint, bool, error) {
	const op = "migrations.Version"
	m, err := newMigrate(db, path)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return version, dirty, nil
}
