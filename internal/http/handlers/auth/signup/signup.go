// Package signup реализует HTTP-обработчик регистрации пользователя.
//
// Тело запроса декодируется в Request, проверка полей и создание пользователя
// делегируются сервису. Занятый email даёт 409, некорректные поля 400.
package signup

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

// Request — входные данные регистрации.
type Request struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret123"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Signup(ctx context.Context, in models.SignupInput) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
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
// @Summary Регистрация пользователя
// @Description Создаёт пользователя. Email сохраняется в нижнем регистре.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации"
// @Success 200 {object} response.Response "Пользователь зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля"
// @Failure 403 {object} response.ErrorResponse "Регистрация администраторов отключена"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

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

	email, err := h.service.Signup(r.Context(), models.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "signup failed", err)
		return
	}

	log.Info("user registered", slog.String("email", email))
	response.OK(w, r, map[string]any{
		"message": "User registered successfully",
		"email":   email,
	})
}
