// Package catalog содержит бизнес-логику каталога: категории и товары.
// Изменения доступны только администратору, списки кешируются.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/shop-backend/internal/cache"
	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/lib/validation"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Repository определяет методы хранилища каталога.
type Repository interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	RenameCategory(ctx context.Context, oldName, newName string) (*models.Category, error)
	DeleteCategory(ctx context.Context, name string) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, in models.ProductInput) (*models.ProductView, error)
	UpdateProduct(ctx context.Context, in models.ProductInput) (*models.ProductView, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]models.ProductView, error)
}

// Cache описывает методы для кэширования списков.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значения из кеша по ключам.
	Invalidate(ctx context.Context, keys ...string) error
}

// Authorizer проверяет права администратора.
type Authorizer interface {
	RequireAdmin(ctx context.Context, token string) (*jwt.CustomClaims, error)
}

// Service реализует операции каталога.
type Service struct {
	repo     Repository
	cache    Cache
	gate     Authorizer
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache Cache, gate Authorizer, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		gate:     gate,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// AddCategory создаёт категорию.
func (s *Service) AddCategory(ctx context.Context, token, name string) (*models.Category, error) {
	const op = "services.catalog.AddCategory"
	if _, err := s.gate.RequireAdmin(ctx, token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in := models.CategoryInput{Name: strings.TrimSpace(name)}
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	category, err := s.repo.CreateCategory(ctx, in.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyCategories)
	s.log.Info("category created", slog.Int64("id", category.ID), slog.String("name", category.Name))
	return category, nil
}

// RenameCategory переименовывает категорию.
func (s *Service) RenameCategory(ctx context.Context, token string, in models.CategoryRename) (*models.Category, error) {
	const op = "services.catalog.RenameCategory"
	if _, err := s.gate.RequireAdmin(ctx, token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in.OldName = strings.TrimSpace(in.OldName)
	in.NewName = strings.TrimSpace(in.NewName)
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	category, err := s.repo.RenameCategory(ctx, in.OldName, in.NewName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// Имя категории входит и в список товаров.
	s.invalidate(ctx, cache.KeyCategories, cache.KeyProducts)
	return category, nil
}

// DeleteCategory удаляет категорию без товаров.
func (s *Service) DeleteCategory(ctx context.Context, token, name string) error {
	const op = "services.catalog.DeleteCategory"
	if _, err := s.gate.RequireAdmin(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	in := models.CategoryInput{Name: strings.TrimSpace(name)}
	if err := validation.Struct(in); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteCategory(ctx, in.Name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyCategories)
	return nil
}

// ListCategories возвращает категории, используя кеш.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "services.catalog.ListCategories"
	var result []models.Category
	if s.fromCache(ctx, cache.KeyCategories, &result) {
		return result, nil
	}

	result, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.toCache(ctx, cache.KeyCategories, result)
	return result, nil
}

// AddProduct создаёт товар, при необходимости создавая категорию.
func (s *Service) AddProduct(ctx context.Context, token string, in models.ProductInput) (*models.ProductView, error) {
	const op = "services.catalog.AddProduct"
	if _, err := s.gate.RequireAdmin(ctx, token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%s: %w: field category is a required field", op, models.ErrInvalidInput)
	}

	product, err := s.repo.CreateProduct(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyProducts, cache.KeyCategories)
	s.log.Info("product created", slog.Int64("id", product.ID), slog.String("name", product.Name))
	return product, nil
}

// UpdateProduct перезаписывает цену и остаток товара и, если задана, его категорию.
func (s *Service) UpdateProduct(ctx context.Context, token string, in models.ProductInput) (*models.ProductView, error) {
	const op = "services.catalog.UpdateProduct"
	if _, err := s.gate.RequireAdmin(ctx, token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	product, err := s.repo.UpdateProduct(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyProducts, cache.KeyCategories)
	return product, nil
}

// DeleteProduct удаляет товар без заказов.
func (s *Service) DeleteProduct(ctx context.Context, token string, id int64) error {
	const op = "services.catalog.DeleteProduct"
	if _, err := s.gate.RequireAdmin(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if id <= 0 {
		return fmt.Errorf("%s: %w: field product_id must be greater than 0", op, models.ErrInvalidInput)
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyProducts)
	return nil
}

// ListProducts возвращает товары с именами категорий, используя кеш.
func (s *Service) ListProducts(ctx context.Context) ([]models.ProductView, error) {
	const op = "services.catalog.ListProducts"
	var result []models.ProductView
	if s.fromCache(ctx, cache.KeyProducts, &result) {
		return result, nil
	}

	result, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.toCache(ctx, cache.KeyProducts, result)
	return result, nil
}

// Ошибки кеша не прерывают операцию: данные берутся из хранилища.
func (s *Service) fromCache(ctx context.Context, key string, result any) bool {
	found, err := s.cache.Get(ctx, key, result)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", key), sl.Err(err))
		return false
	}
	return found
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache", slog.String("key", key), sl.Err(err))
	}
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("keys", keys), sl.Err(err))
	}
}
