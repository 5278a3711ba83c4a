// Package repository реализует хранилище магазина на основе PostgreSQL:
// пользователи, категории, товары и заказы. Операции, затрагивающие
// несколько строк, выполняются в одной транзакции.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// CheckDatabaseReady проверяет, что миграции применены и таблицы магазина существуют.
func CheckDatabaseReady(storage *Storage) error {
	for _, table := range []string{"users", "categories", "products", "orders"} {
		var exists bool
		err := storage.DB.QueryRow(`SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("required table %s missing", table)
		}
	}
	return nil
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// withTx выполняет fn в транзакции. Ошибка fn или паника откатывают транзакцию.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
