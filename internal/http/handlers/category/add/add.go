// Package add реализует HTTP-обработчик создания категории (только администратор).
package add

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Request содержит данные новой категории. Token можно передать заголовком Authorization.
type Request struct {
	Name  string `json:"name" example:"Books"`
	Token string `json:"token,omitempty"`
}

// Service описывает создание категории.
type Service interface {
	AddCategory(ctx context.Context, token, name string) (*models.Category, error)
}

// Handler обрабатывает HTTP-запросы создания категории.
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
// @Summary Создание категории
// @Tags Category
// @Accept  json
// @Produce  json
// @Param request body Request true "Категория"
// @Success 200 {object} response.Response "Категория создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Нужны права администратора"
// @Failure 409 {object} response.ErrorResponse "Категория уже существует"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /category/add [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.add"

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

	token := middlewarectx.ResolveToken(r.Context(), req.Token)
	category, err := h.service.AddCategory(r.Context(), token, req.Name)
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to add category", err)
		return
	}

	log.Info("category added", slog.Int64("id", category.ID))
	response.OK(w, r, map[string]any{
		"message":  "Category added successfully",
		"category": category.Name,
	})
}
