package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

// SessionHeader carries the session token for clients that do not send an
// Authorization header.
const SessionHeader = "x-access-tokens"

type sessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.User, domain.Authorization, error)
}

// Auth resolves the session token, when present, into the local user id and
// the remote credentials. Requests without a token pass through anonymously;
// handlers decide whether anonymity is acceptable.
func Auth(resolver sessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			user, authz, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "token is invalid"}) //nolint:errcheck
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), user.ID)
			ctx = ctxutil.WithAuthorization(ctx, authz)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(SessionHeader)); t != "" {
		return t
	}
	h := r.Header.Get("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
