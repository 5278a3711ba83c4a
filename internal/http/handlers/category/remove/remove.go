// Package remove реализует HTTP-обработчик удаления категории.
// Категорию, в которой есть товары, удалить нельзя.
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

// Request содержит имя удаляемой категории.
type Request struct {
	Name  string `json:"name" example:"Books"`
	Token string `json:"token,omitempty"`
}

// Service описывает удаление категории.
type Service interface {
	DeleteCategory(ctx context.Context, token, name string) error
}

// Handler обрабатывает HTTP-запросы удаления категории.
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
// @Summary Удаление категории
// @Tags Category
// @Accept  json
// @Produce  json
// @Param request body Request true "Категория"
// @Success 200 {object} response.Response "Категория удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Нужны права администратора"
// @Failure 404 {object} response.ErrorResponse "Категория не найдена"
// @Failure 409 {object} response.ErrorResponse "В категории есть товары"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /category/delete [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.remove"

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

	if err := h.service.DeleteCategory(r.Context(), middlewarectx.ResolveToken(r.Context(), req.Token), req.Name); err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to delete category", err)
		return
	}

	log.Info("category deleted", slog.String("name", req.Name))
	response.OK(w, r, map[string]any{"message": "Category deleted successfully"})
}
