package middlewarectx

import (
	"net/http"
	"strings"
)

// CORS добавляет заголовки Access-Control для разрешённых источников
// и сразу отвечает на preflight-запросы OPTIONS. "*" разрешает любой источник.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
			break
		}
		if origin != "" {
			allowed[strings.ToLower(origin)] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				_, ok := allowed[strings.ToLower(origin)]
				if allowAll || ok {
					h := w.Header()
					if allowAll {
						h.Set("Access-Control-Allow-Origin", "*")
					} else {
						h.Set("Access-Control-Allow-Origin", origin)
						h.Set("Access-Control-Allow-Credentials", "true")
					}
					h.Add("Vary", "Origin")
					h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
					h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
