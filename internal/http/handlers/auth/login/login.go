// Package login реализует HTTP-обработчик входа пользователя.
//
// При успешной проверке пароля возвращается токен доступа с типом "bearer".
package login

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

// Request — учетные данные пользователя.
type Request struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret123"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, in models.LoginInput) (string, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
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
// @Summary Авторизация пользователя
// @Description Проверяет email и пароль и выдаёт токен доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Токен доступа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, err := h.service.Login(r.Context(), models.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		status := response.Fail(w, r, err)
		response.LogError(log, status, "login failed", err)
		return
	}

	log.Info("login success")
	response.OK(w, r, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	})
}
