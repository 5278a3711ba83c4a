// Package list реализует HTTP-обработчик списка заказов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Service описывает получение списка заказов.
type Service interface {
	List(ctx context.Context) ([]models.OrderView, error)
}

// Handler обрабатывает HTTP-запросы списка заказов.
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
// @Summary Список заказов
// @Tags Order
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.OrderView} "Заказы"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	orders, err := h.service.List(r.Context())
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to list orders", err)
		return
	}

	response.OK(w, r, orders)
}
