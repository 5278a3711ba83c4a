// Package list реализует HTTP-обработчик списка категорий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Service описывает получение списка категорий.
type Service interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Handler обрабатывает HTTP-запросы списка категорий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список категорий
// @Tags Category
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.Category} "Категории"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to list categories", err)
		return
	}

	response.OK(w, r, categories)
}
