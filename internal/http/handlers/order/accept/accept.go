// Package accept реализует HTTP-обработчик подтверждения заказа администратором.
package accept

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
)

// Request содержит id подтверждаемого заказа.
type Request struct {
	OrderID int64  `json:"order_id" example:"1"`
	Token   string `json:"token,omitempty"`
}

// Service описывает подтверждение заказа.
type Service interface {
	Accept(ctx context.Context, token string, orderID int64) (int, error)
}

// Handler обрабатывает HTTP-запросы подтверждения заказа.
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
// @Summary Подтверждение заказа
// @Description Переводит заказ из Pending в Accepted и списывает остаток товара.
// @Tags Order
// @Accept  json
// @Produce  json
// @Param request body Request true "Заказ"
// @Success 200 {object} response.Response "Заказ подтверждён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Нужны права администратора"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден или уже подтверждён"
// @Failure 422 {object} response.ErrorResponse "Недостаточно товара на складе"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /order/accept [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.accept"

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

	remaining, err := h.service.Accept(r.Context(), middlewarectx.ResolveToken(r.Context(), req.Token), req.OrderID)
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to accept order", err)
		return
	}

	response.OK(w, r, map[string]any{
		"message":         "Order accepted, stock updated",
		"remaining_stock": remaining,
	})
}
