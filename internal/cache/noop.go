package cache

import (
	"context"
	"time"
)

// Noop используется, когда redis не настроен: всегда промах.
type Noop struct{}

// Get всегда возвращает промах.
func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set ничего не делает.
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }

// Invalidate ничего не делает.
func (Noop) Invalidate(context.Context, ...string) error { return nil }

// Ключи публичных списков каталога.
const (
	KeyCategories = "catalog:categories"
	KeyProducts   = "catalog:products"
)
