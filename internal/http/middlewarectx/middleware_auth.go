// Package middlewarectx содержит HTTP middleware магазина: извлечение токена
// из заголовка Authorization, ограничение частоты запросов, CORS и метрики.
package middlewarectx

import (
	"context"
	"net/http"
	"strings"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Token — ключ для токена из заголовка Authorization в контексте.
const Token Key = "token"

// BearerToken кладёт в контекст токен из заголовка "Authorization: Bearer <token>".
// Проверка токена выполняется в сервисах, middleware запрос не отклоняет.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(authHeader, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			r = r.WithContext(context.WithValue(r.Context(), Token, strings.TrimSpace(token)))
		}
		next.ServeHTTP(w, r)
	})
}

// ResolveToken возвращает токен из тела запроса, а если он пуст, токен из заголовка.
func ResolveToken(ctx context.Context, bodyToken string) string {
	if bodyToken = strings.TrimSpace(bodyToken); bodyToken != "" {
		return bodyToken
	}
	token, _ := ctx.Value(Token).(string)
	return token
}
