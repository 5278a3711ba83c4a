// Package update реализует HTTP-обработчик переименования категории.
package update

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

// Request содержит старое и новое имя категории.
type Request struct {
	OldName string `json:"old_name" example:"Books"`
	NewName string `json:"new_name" example:"Novels"`
	Token   string `json:"token,omitempty"`
}

// Service описывает переименование категории.
type Service interface {
	RenameCategory(ctx context.Context, token string, in models.CategoryRename) (*models.Category, error)
}

// Handler обрабатывает HTTP-запросы переименования категории.
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
// @Summary Переименование категории
// @Tags Category
// @Accept  json
// @Produce  json
// @Param request body Request true "Старое и новое имя"
// @Success 200 {object} response.Response "Категория переименована"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Нужны права администратора"
// @Failure 404 {object} response.ErrorResponse "Категория не найдена"
// @Failure 409 {object} response.ErrorResponse "Новое имя занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /category/update [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.update"

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

	category, err := h.service.RenameCategory(r.Context(),
		middlewarectx.ResolveToken(r.Context(), req.Token),
		models.CategoryRename{OldName: req.OldName, NewName: req.NewName},
	)
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to rename category", err)
		return
	}

	log.Info("category renamed", slog.Int64("id", category.ID), slog.String("new_name", category.Name))
	response.OK(w, r, map[string]any{
		"message":  "Category updated successfully",
		"new_name": category.Name,
	})
}
