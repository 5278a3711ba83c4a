// Package place реализует HTTP-обработчик оформления заказа.
//
// Оформление доступно без токена: покупатель указывает имя товара и количество,
// заказ создаётся в статусе Pending без резервирования остатка.
package place

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Request представляет тело запроса оформления заказа.
type Request struct {
	ProductName string `json:"product_name" example:"Atlas"`
	Quantity    int    `json:"quantity" example:"2"`
}

// Service описывает оформление заказа.
type Service interface {
	Place(ctx context.Context, in models.PlaceOrderInput) (int64, error)
}

// Handler обрабатывает HTTP-запросы оформления заказа.
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
// @Summary Оформление заказа
// @Tags Order
// @Accept  json
// @Produce  json
// @Param request body Request true "Заказ"
// @Success 200 {object} response.Response "Заказ оформлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 422 {object} response.ErrorResponse "Недостаточно товара на складе"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /order/place [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.place"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		response.BadRequest(w, r, response.MsgInvalidBody)
		return
	}

	id, err := h.service.Place(r.Context(), models.PlaceOrderInput{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
	})
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to place order", err)
		return
	}

	response.OK(w, r, map[string]any{
		"message":  "Order placed successfully",
		"order_id": id,
	})
}
