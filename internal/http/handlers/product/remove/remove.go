// Package remove реализует HTTP-обработчик удаления товара по id.
package remove

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

// Request содержит id удаляемого товара.
type Request struct {
	ID    int64  `json:"id" example:"1"`
	Token string `json:"token,omitempty"`
}

// Service описывает удаление товара.
type Service interface {
	DeleteProduct(ctx context.Context, token string, id int64) error
}

// Handler обрабатывает HTTP-запросы удаления товара.
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
// @Summary Удаление товара
// @Tags Product
// @Accept  json
// @Produce  json
// @Param request body Request true "Товар"
// @Success 200 {object} response.Response "Товар удалён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Нужны права администратора"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 409 {object} response.ErrorResponse "На товар есть заказы"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /product/delete [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.remove"

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

	if err := h.service.DeleteProduct(r.Context(), middlewarectx.ResolveToken(r.Context(), req.Token), req.ID); err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to delete product", err)
		return
	}

	log.Info("product deleted", slog.Int64("id", req.ID))
	response.OK(w, r, map[string]any{"message": "Product deleted successfully"})
}
