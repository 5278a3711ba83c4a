// Package list реализует HTTP-обработчик списка товаров с именами категорий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Service описывает получение списка товаров.
type Service interface {
	ListProducts(ctx context.Context) ([]models.ProductView, error)
}

// Handler обрабатывает HTTP-запросы списка товаров.
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
// @Summary Список товаров
// @Tags Product
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.ProductView} "Товары"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to list products", err)
		return
	}

	response.OK(w, r, products)
}
