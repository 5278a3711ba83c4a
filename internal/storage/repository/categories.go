package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// querier — общее подмножество *sql.DB и *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateCategory создаёт категорию. Занятое имя возвращает models.ErrAlreadyExists.
func (s *Storage) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	const op = "storage.CreateCategory"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	c := &models.Category{}
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id, name`
	if err := s.DB.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return c, nil
}

// upsertCategory возвращает категорию с указанным именем, создавая её при отсутствии.
func upsertCategory(ctx context.Context, q querier, name string) (*models.Category, error) {
	c := &models.Category{}
	query := `INSERT INTO categories (name) VALUES ($1)
			  ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			  RETURNING id, name`
	if err := q.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// RenameCategory меняет имя категории oldName на newName.
func (s *Storage) RenameCategory(ctx context.Context, oldName, newName string) (*models.Category, error) {
	const op = "storage.RenameCategory"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	c := &models.Category{}
	query := `UPDATE categories SET name = $2 WHERE name = $1 RETURNING id, name`
	if err := s.DB.QueryRowContext(ctx, query, oldName, newName).Scan(&c.ID, &c.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return c, nil
}

// DeleteCategory удаляет категорию по имени.
// Категория, на которую ссылаются товары, не удаляется: models.ErrInUse.
func (s *Storage) DeleteCategory(ctx context.Context, name string) error {
	const op = "storage.DeleteCategory"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM categories WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// ListCategories возвращает все категории в порядке id.
func (s *Storage) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "storage.ListCategories"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}
