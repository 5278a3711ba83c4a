// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: успешных ответов и ошибок
// в едином формате, а также сопоставление видов ошибок с кодами HTTP.
package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа, пустой список сериализуется как [].
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK означает успешный ответ.
	StatusOK = "OK"
	// StatusError означает ответ с ошибкой.
	StatusError = "Error"
)

// MsgInvalidBody — текст ошибки для тела запроса, которое не разбирается как JSON.
const MsgInvalidBody = "invalid request body"

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

type kind struct {
	target error
	status int
	// detail: клиенту отдаётся текст от сентинела до конца строки, а не только сам сентинел.
	detail bool
}

var kinds = []kind{
	{target: jwt.ErrTokenRequired, status: http.StatusUnauthorized},
	{target: jwt.ErrTokenExpired, status: http.StatusUnauthorized},
	{target: jwt.ErrTokenInvalid, status: http.StatusUnauthorized},
	{target: models.ErrInvalidCredentials, status: http.StatusUnauthorized},
	{target: models.ErrForbidden, status: http.StatusForbidden},
	{target: models.ErrNotFound, status: http.StatusNotFound},
	{target: models.ErrAlreadyExists, status: http.StatusConflict},
	{target: models.ErrInUse, status: http.StatusConflict},
	{target: models.ErrInsufficientStock, status: http.StatusUnprocessableEntity, detail: true},
	{target: models.ErrInvalidInput, status: http.StatusBadRequest, detail: true},
}

// ErrorStatus сопоставляет ошибке код HTTP и безопасный для клиента текст.
// Неизвестные ошибки дают 500 без подробностей.
func ErrorStatus(err error) (int, string) {
	for _, k := range kinds {
		if !errors.Is(err, k.target) {
			continue
		}
		msg := k.target.Error()
		if k.detail {
			full := err.Error()
			if i := strings.Index(full, msg); i >= 0 {
				msg = full[i:]
				if j := strings.IndexByte(msg, '\n'); j >= 0 {
					msg = msg[:j]
				}
			}
		}
		return k.status, msg
	}
	return http.StatusInternalServerError, "internal error"
}

// Fail пишет ответ с ошибкой и кодом, соответствующим виду err.
// Возвращает выбранный код.
func Fail(w http.ResponseWriter, r *http.Request, err error) int {
	status, msg := ErrorStatus(err)
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
	return status
}

// BadRequest пишет ответ 400 с сообщением msg.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(msg))
}

// OK пишет успешный ответ с данными.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, OKWithData(data))
}

// LogError пишет в log ошибку обработки запроса: 5xx на уровне Error, остальные на уровне Warn.
func LogError(log *slog.Logger, status int, msg string, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.LogAttrs(context.Background(), level, msg, slog.Int("status", status), sl.Err(err))
}
