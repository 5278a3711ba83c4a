package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

func TestStorage_Categories(t *testing.T) {
	storage := setupTestDatabase(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	books, err := storage.CreateCategory(ctx, "Books")
	require.NoError(t, err)
	assert.Equal(t, "Books", books.Name)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := storage.CreateCategory(ctx, "Books")
		require.ErrorIs(t, err, models.ErrAlreadyExists)
	})

	t.Run("upsert returns existing category", func(t *testing.T) {
		got, err := upsertCategory(ctx, storage.DB, "Books")
		require.NoError(t, err)
		assert.Equal(t, books.ID, got.ID)

		created, err := upsertCategory(ctx, storage.DB, "Maps")
		require.NoError(t, err)
		assert.NotEqual(t, books.ID, created.ID)
	})

	t.Run("rename", func(t *testing.T) {
		factory.CreateCategory(t, "Tmp")
		got, err := storage.RenameCategory(ctx, "Tmp", "Temp")
		require.NoError(t, err)
		assert.Equal(t, "Temp", got.Name)

		_, err = storage.RenameCategory(ctx, "Tmp", "Other")
		require.ErrorIs(t, err, models.ErrNotFound)

		_, err = storage.RenameCategory(ctx, "Temp", "Books")
		require.ErrorIs(t, err, models.ErrAlreadyExists)
	})

	t.Run("delete", func(t *testing.T) {
		factory.CreateCategory(t, "Empty")
		require.NoError(t, storage.DeleteCategory(ctx, "Empty"))
		require.ErrorIs(t, storage.DeleteCategory(ctx, "Empty"), models.ErrNotFound)
	})

	t.Run("delete category with products is forbidden", func(t *testing.T) {
		factory.CreateProduct(t, "Atlas", "Books", 10, 5)
		require.ErrorIs(t, storage.DeleteCategory(ctx, "Books"), models.ErrInUse)
	})

	t.Run("list", func(t *testing.T) {
		list, err := storage.ListCategories(ctx)
		require.NoError(t, err)
		names := make([]string, 0, len(list))
		for _, c := range list {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"Books", "Maps", "Temp"}, names)
	})
}

func TestStorage_Products(t *testing.T) {
	storage := setupTestDatabase(t)
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	t.Run("create auto-creates category", func(t *testing.T) {
		p, err := storage.CreateProduct(ctx, models.ProductInput{Name: "Atlas", Category: "Books", Price: 10, Stock: 5})
		require.NoError(t, err)
		assert.Equal(t, models.ProductView{ID: p.ID, Name: "Atlas", Category: "Books", Price: 10, Stock: 5}, *p)
		assert.Equal(t, 1, verify.Count(t, "categories"))
	})

	t.Run("same name in same category conflicts", func(t *testing.T) {
		_, err := storage.CreateProduct(ctx, models.ProductInput{Name: "Atlas", Category: "Books", Price: 1, Stock: 1})
		require.ErrorIs(t, err, models.ErrAlreadyExists)
		assert.Equal(t, 1, verify.Count(t, "products"))
	})

	t.Run("failed create rolls back the new category", func(t *testing.T) {
		_, err := storage.CreateProduct(ctx, models.ProductInput{Name: "Bad", Category: "Ghost", Price: -1, Stock: 1})
		require.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Equal(t, 1, verify.Count(t, "categories"))
	})

	t.Run("same name in another category is allowed and lowest id wins", func(t *testing.T) {
		first, err := storage.GetProductByName(ctx, "Atlas")
		require.NoError(t, err)

		factory.CreateProduct(t, "Atlas", "Maps", 20, 1)
		got, err := storage.GetProductByName(ctx, "Atlas")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("update keeps category when empty", func(t *testing.T) {
		p, err := storage.UpdateProduct(ctx, models.ProductInput{Name: "Atlas", Price: 12.5, Stock: 7})
		require.NoError(t, err)
		assert.Equal(t, "Books", p.Category)
		assert.Equal(t, 12.5, p.Price)
		assert.Equal(t, 7, p.Stock)
	})

	t.Run("update moves product to new category", func(t *testing.T) {
		p, err := storage.UpdateProduct(ctx, models.ProductInput{Name: "Atlas", Category: "Travel", Price: 12.5, Stock: 7})
		require.NoError(t, err)
		assert.Equal(t, "Travel", p.Category)
	})

	t.Run("update unknown product", func(t *testing.T) {
		_, err := storage.UpdateProduct(ctx, models.ProductInput{Name: "Nope", Price: 1, Stock: 1})
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("list joins category names", func(t *testing.T) {
		list, err := storage.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Travel", list[0].Category)
		assert.Equal(t, "Maps", list[1].Category)
	})

	t.Run("delete", func(t *testing.T) {
		id := factory.CreateProduct(t, "Globe", "Maps", 30, 2)
		require.NoError(t, storage.DeleteProduct(ctx, id))
		require.ErrorIs(t, storage.DeleteProduct(ctx, id), models.ErrNotFound)
	})

	t.Run("delete product with orders is forbidden", func(t *testing.T) {
		id := factory.CreateProduct(t, "Compass", "Maps", 30, 2)
		factory.CreateOrder(t, id, 1)
		require.ErrorIs(t, storage.DeleteProduct(ctx, id), models.ErrInUse)
	})
}
