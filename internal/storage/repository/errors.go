package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Коды ошибок PostgreSQL, которые переводятся в доменные ошибки.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// translate переводит ошибки драйвера в ошибки пакета models.
// Исходная ошибка сохраняется в цепочке.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Join(models.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Join(models.ErrAlreadyExists, err)
		case pgForeignKeyViolation:
			return errors.Join(models.ErrInUse, err)
		case pgCheckViolation, pgNumericOutOfRange:
			return errors.Join(models.ErrInvalidInput, err)
		}
	}
	return err
}
