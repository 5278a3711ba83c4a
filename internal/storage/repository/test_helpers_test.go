package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/lib/pgtest"
	"github.com/magabrotheeeer/shop-backend/internal/migrations"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// setupTestDatabase поднимает PostgreSQL, применяет миграции и возвращает Storage.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	dsn := pgtest.StartPostgres(t)

	storage, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	require.NoError(t, migrations.Run(storage.DB, pgtest.MigrationsPath(t)))
	return storage
}

// TestDataFactory создаёт тестовые данные напрямую через SQL.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateCategory создает категорию и возвращает её id.
func (f *TestDataFactory) CreateCategory(t *testing.T, name string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateProduct создает товар в категории categoryName (категория создаётся при отсутствии).
func (f *TestDataFactory) CreateProduct(t *testing.T, name, categoryName string, price float64, stock int) int64 {
	p, err := f.storage.CreateProduct(context.Background(), models.ProductInput{
		Name: name, Category: categoryName, Price: price, Stock: stock,
	})
	require.NoError(t, err)
	return p.ID
}

// CreateOrder создает заказ в статусе Pending.
func (f *TestDataFactory) CreateOrder(t *testing.T, productID int64, quantity int) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO orders (product_id, quantity) VALUES ($1, $2) RETURNING id`,
		productID, quantity).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит проверки состояния базы.
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект проверок.
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// Stock возвращает текущий остаток товара.
func (v *TestVerification) Stock(t *testing.T, productID int64) int {
	var stock int
	err := v.storage.DB.QueryRow(`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

// OrderStatus возвращает статус заказа.
func (v *TestVerification) OrderStatus(t *testing.T, orderID int64) models.OrderStatus {
	var status models.OrderStatus
	err := v.storage.DB.QueryRow(`SELECT status FROM orders WHERE id = $1`, orderID).Scan(&status)
	require.NoError(t, err)
	return status
}

// Order читает заказ по id.
func (v *TestVerification) Order(t *testing.T, orderID int64) *models.Order {
	o := &models.Order{}
	var acceptedAt sql.NullTime
	err := v.storage.DB.QueryRow(`SELECT id, product_id, quantity, status, created_at, accepted_at
		FROM orders WHERE id = $1`, orderID).
		Scan(&o.ID, &o.ProductID, &o.Quantity, &o.Status, &o.CreatedAt, &acceptedAt)
	require.NoError(t, err)
	if acceptedAt.Valid {
		o.AcceptedAt = &acceptedAt.Time
	}
	return o
}

// Count возвращает число строк в таблице.
func (v *TestVerification) Count(t *testing.T, table string) int {
	var n int
	err := v.storage.DB.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n)
	require.NoError(t, err)
	return n
}
