// Package add реализует HTTP-обработчик создания товара.
//
// Категория указывается по имени и создаётся, если её ещё нет.
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

// Request представляет тело запроса создания товара.
type Request struct {
	Name         string  `json:"name" example:"Atlas"`
	CategoryName string  `json:"category_name" example:"Books"`
	Price        float64 `json:"price" example:"9.99"`
	Stock        int     `json:"stock" example:"3"`
	Token        string  `json:"token,omitempty"`
}

// Service описывает создание товара.
type Service interface {
	AddProduct(ctx context.Context, token string, in models.ProductInput) (*models.ProductView, error)
}

// Handler обрабатывает HTTP-запросы создания товара.
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
// @Summary Создание товара
// @Tags Product
// @Accept  json
// @Produce  json
// @Param request body Request true "Товар"
// @Success 200 {object} response.Response "Товар создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Нужны права администратора"
// @Failure 409 {object} response.ErrorResponse "Товар уже есть в категории"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /product/add [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.add"

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

	product, err := h.service.AddProduct(r.Context(), middlewarectx.ResolveToken(r.Context(), req.Token), models.ProductInput{
		Name:     req.Name,
		Category: req.CategoryName,
		Price:    req.Price,
		Stock:    req.Stock,
	})
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "failed to add product", err)
		return
	}

	log.Info("product added", slog.Int64("id", product.ID))
	response.OK(w, r, map[string]any{
		"message":      "Product added successfully",
		"product_name": product.Name,
	})
}
