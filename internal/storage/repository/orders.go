package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// CreateOrder сохраняет заказ в статусе Pending и возвращает его ID.
// Остаток товара не резервируется.
func (s *Storage) CreateOrder(ctx context.Context, productID int64, quantity int) (int64, error) {
	const op = "storage.CreateOrder"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var newID int64
	query := `INSERT INTO orders (product_id, quantity, status)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	err := s.DB.QueryRowContext(ctx, query, productID, quantity, models.OrderStatusPending).Scan(&newID)
	if err != nil {
		err = translate(err)
		// Товар удалён между проверкой и вставкой.
		if errors.Is(err, models.ErrInUse) {
			err = errors.Join(models.ErrNotFound, err)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// AcceptOrder переводит заказ из Pending в Accepted и списывает остаток товара.
//
// Заказ и товар блокируются (SELECT ... FOR UPDATE) в одной транзакции, поэтому
// конкурентные подтверждения сериализуются. Отсутствующий или уже подтверждённый
// заказ возвращает models.ErrNotFound, нехватка остатка models.ErrInsufficientStock.
// При любой ошибке транзакция откатывается.
func (s *Storage) AcceptOrder(ctx context.Context, orderID int64) (*models.AcceptedOrder, error) {
	const op = "storage.AcceptOrder"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	accepted := &models.AcceptedOrder{OrderID: orderID}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT product_id, quantity FROM orders
				  WHERE id = $1 AND status = $2
				  FOR UPDATE`
		if err := tx.QueryRowContext(ctx, query, orderID, models.OrderStatusPending).
			Scan(&accepted.ProductID, &accepted.Quantity); err != nil {
			return translate(err)
		}

		var stock int
		if err := tx.QueryRowContext(ctx,
			`SELECT stock FROM products WHERE id = $1 FOR UPDATE`, accepted.ProductID).
			Scan(&stock); err != nil {
			return translate(err)
		}
		if accepted.Quantity > stock {
			return models.ErrInsufficientStock
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $2, accepted_at = NOW() WHERE id = $1`,
			orderID, models.OrderStatusAccepted); err != nil {
			return translate(err)
		}

		return translate(tx.QueryRowContext(ctx,
			`UPDATE products SET stock = stock - $2 WHERE id = $1 RETURNING stock`,
			accepted.ProductID, accepted.Quantity).Scan(&accepted.RemainingStock))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return accepted, nil
}

// ListOrders возвращает все заказы с именами товаров в порядке id.
func (s *Storage) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	const op = "storage.ListOrders"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT o.id, p.name, o.quantity, o.status
			  FROM orders o
			  JOIN products p ON p.id = o.product_id
			  ORDER BY o.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	orders := make([]models.OrderView, 0)
	for rows.Next() {
		var o models.OrderView
		if err := rows.Scan(&o.ID, &o.ProductName, &o.Quantity, &o.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
