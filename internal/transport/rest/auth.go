package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/agpb-backend/internal/service/auth"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

const (
	stateCookie    = "agpb_oauth_state"
	stateCookieTTL = 10 * time.Minute
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Initiate(ctx context.Context) (*auth.LoginStart, error)
	Complete(ctx context.Context, input auth.CompleteInput) (*auth.AuthResult, error)
	Reissue(ctx context.Context) (*auth.AuthResult, error)
	Logout(ctx context.Context) error
}

// AuthHandler serves the OAuth login endpoints.
type AuthHandler struct {
	svc         authService
	log         *slog.Logger
	frontendURL string
}

// NewAuthHandler creates an AuthHandler. Authenticated visits to the login
// endpoint are redirected to frontendURL with a fresh session token.
func NewAuthHandler(svc authService, logger *slog.Logger, frontendURL string) *AuthHandler {
	return &AuthHandler{
		svc:         svc,
		log:         logger.With("handler", "auth"),
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

type loginResponse struct {
	RedirectString string `json:"redirect_string"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login handles GET /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.AuthorizationFromCtx(r.Context()); ok {
		result, err := h.svc.Reissue(r.Context())
		if err == nil {
			http.Redirect(w, r, h.frontendURL+"/oauth/callback?token="+url.QueryEscape(result.Token), http.StatusFound)
			return
		}
		h.log.DebugContext(r.Context(), "session not reissued, starting new login", slog.String("error", err.Error()))
	}

	start, err := h.svc.Initiate(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    start.State,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{RedirectString: start.RedirectURL})
}

// Callback handles GET /oauth-callback.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "OAuth callback failed. Are cookies disabled?")
		return
	}

	q := r.URL.Query()
	result, err := h.svc.Complete(r.Context(), auth.CompleteInput{
		State:      cookie.Value,
		OAuthToken: q.Get("oauth_token"),
		Verifier:   q.Get("oauth_verifier"),
	})
	// The request token is single use either way.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: isHTTPS(r)})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: result.Token, Username: result.User.Username})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
