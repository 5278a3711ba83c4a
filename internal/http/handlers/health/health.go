// Package health реализует HTTP-проверку готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler отвечает на GET /api/health.
type Handler struct {
	log *slog.Logger
	db  Pinger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{log: log, db: db}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]string "Сервис готов"
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("health check failed", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}
