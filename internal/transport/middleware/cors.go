package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/config"
)

// CORS returns middleware that answers preflight requests and sets the
// allow-origin headers for configured origins. Origins admitted only by the
// "*" entry get a literal wildcard and never the credentials header.
func CORS(cfg config.CORSConfig) Middleware {
	origins := splitList(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				switch matchOrigin(origin, origins) {
				case originListed:
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
					w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
					if cfg.AllowCredentials {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
				case originWildcard:
					w.Header().Set("Access-Control-Allow-Origin", "*")
					w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type originMatch int

const (
	originDenied originMatch = iota
	originWildcard
	originListed
)

func matchOrigin(origin string, allowed []string) originMatch {
	match := originDenied
	for _, a := range allowed {
		if strings.EqualFold(a, origin) {
			return originListed
		}
		if a == "*" {
			match = originWildcard
		}
	}
	return match
}
