package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/shop-backend/internal/http/response"
)

// idleTTL — через столько неактивности лимитер клиента забывается.
// Проход по карте клиентов выполняется не чаще раза за idleTTL.
const idleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов отдельно для каждого IP.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	rps       rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter создаёт лимитер на rps запросов в секунду с запасом burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow сообщает, можно ли пропустить запрос клиента key.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.lastSweep.IsZero() {
		l.lastSweep = now
	}
	if now.Sub(l.lastSweep) >= idleTTL {
		l.sweep(now)
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *RateLimiter) sweep(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > idleTTL {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}

// RateLimitMiddleware отвечает 429, если клиент превысил лимит.
// Клиент определяется только по RemoteAddr: заголовкам X-Forwarded-For
// и X-Real-IP без доверенного прокси верить нельзя.
func RateLimitMiddleware(log *slog.Logger, limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				log.Warn("too many requests",
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
