package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// CreateProduct в одной транзакции находит или создаёт категорию по имени
// и добавляет товар. Пара (имя, категория) уникальна.
func (s *Storage) CreateProduct(ctx context.Context, in models.ProductInput) (*models.ProductView, error) {
	const op = "storage.CreateProduct"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	view := &models.ProductView{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		category, err := upsertCategory(ctx, tx, in.Category)
		if err != nil {
			return err
		}

		query := `INSERT INTO products (name, category_id, price, stock)
				  VALUES ($1, $2, $3, $4)
				  RETURNING id, name, price, stock`
		if err := tx.QueryRowContext(ctx, query, in.Name, category.ID, in.Price, in.Stock).
			Scan(&view.ID, &view.Name, &view.Price, &view.Stock); err != nil {
			return translate(err)
		}
		view.Category = category.Name
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

// UpdateProduct перезаписывает цену и остаток товара с именем in.Name.
// Непустая in.Category переносит товар в категорию с этим именем,
// создавая её при необходимости. Пустая оставляет текущую.
func (s *Storage) UpdateProduct(ctx context.Context, in models.ProductInput) (*models.ProductView, error) {
	const op = "storage.UpdateProduct"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	view := &models.ProductView{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var p models.Product
		query := `SELECT id, category_id FROM products
				  WHERE name = $1
				  ORDER BY id
				  LIMIT 1
				  FOR UPDATE`
		if err := tx.QueryRowContext(ctx, query, in.Name).Scan(&p.ID, &p.CategoryID); err != nil {
			return translate(err)
		}

		categoryID := p.CategoryID
		if in.Category != "" {
			category, err := upsertCategory(ctx, tx, in.Category)
			if err != nil {
				return err
			}
			categoryID = category.ID
		}

		query = `UPDATE products SET category_id = $2, price = $3, stock = $4
				 WHERE id = $1
				 RETURNING id, name, price, stock`
		if err := tx.QueryRowContext(ctx, query, p.ID, categoryID, in.Price, in.Stock).
			Scan(&view.ID, &view.Name, &view.Price, &view.Stock); err != nil {
			return translate(err)
		}

		return translate(tx.QueryRowContext(ctx,
			`SELECT name FROM categories WHERE id = $1`, categoryID).Scan(&view.Category))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

// DeleteProduct удаляет товар по id.
// Товар, на который ссылаются заказы, не удаляется: models.ErrInUse.
func (s *Storage) DeleteProduct(ctx context.Context, id int64) error {
	const op = "storage.DeleteProduct"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
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

// GetProductByName возвращает товар по имени. При совпадении имён
// в разных категориях выбирается товар с наименьшим id.
func (s *Storage) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	const op = "storage.GetProductByName"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	p := &models.Product{}
	query := `SELECT id, name, category_id, price, stock
			  FROM products
			  WHERE name = $1
			  ORDER BY id
			  LIMIT 1`
	if err := s.DB.QueryRowContext(ctx, query, name).
		Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Stock); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return p, nil
}

// ListProducts возвращает все товары с именами категорий в порядке id.
func (s *Storage) ListProducts(ctx context.Context) ([]models.ProductView, error) {
	const op = "storage.ListProducts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT p.id, p.name, c.name, p.price, p.stock
			  FROM products p
			  JOIN categories c ON c.id = p.category_id
			  ORDER BY p.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]models.ProductView, 0)
	for rows.Next() {
		var p models.ProductView
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}
