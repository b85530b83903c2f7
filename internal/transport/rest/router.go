package rest

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/transport/middleware"
)

// DefaultAPIPrefix is mounted when RouterDeps.Prefix is empty.
const DefaultAPIPrefix = "/api/v1"

// RouterDeps collects the handlers and cross-cutting pieces served by the
// API.
type RouterDeps struct {
	Prefix string

	Auth          *AuthHandler
	Users         *UserHandler
	Contributions *ContributionHandler
	Languages     *LanguageHandler
	Lexemes       *LexemeHandler
	Health        *HealthHandler

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Write guards every mutating route. Nil leaves them unguarded.
	Write middleware.Middleware
}

// NewRouter registers every route on a new ServeMux. Health probes and
// /metrics live at the root; the API lives under the prefix.
func NewRouter(d RouterDeps) *http.ServeMux {
	prefix := strings.TrimRight(d.Prefix, "/")
	if prefix == "" {
		prefix = DefaultAPIPrefix
	}
	write := middleware.Chain(d.Write)

	mux := http.NewServeMux()
	api := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.Handle(method+" "+prefix+path, h)
	}
	apiWrite := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.Handle(method+" "+prefix+path, write(h))
	}

	if d.Health != nil {
		mux.HandleFunc("GET /live", d.Health.Live)
		mux.HandleFunc("GET /ready", d.Health.Ready)
		mux.HandleFunc("GET /health", d.Health.Health)
	}
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	if d.Auth != nil {
		api("GET /auth/login", d.Auth.Login)
		api("GET /oauth-callback", d.Auth.Callback)
		api("POST /auth/logout", d.Auth.Logout)
	}
	if d.Users != nil {
		api("GET /users/me", d.Users.Me)
		apiWrite("PATCH /users/me", d.Users.Update)
	}
	if d.Contributions != nil {
		api("GET /contributions/{$}", d.Contributions.List)
		api("GET /contributions/{id}", d.Contributions.Get)
	}
	if d.Languages != nil {
		api("GET /languages/{$}", d.Languages.List)
		api("GET /languages/{code}", d.Languages.Get)
	}
	if d.Lexemes != nil {
		api("POST /lexemes/{$}", d.Lexemes.Search)
		api("GET /lexemes/{id}", d.Lexemes.Glosses)
		api("GET /lexemes/{id}/forms/missing-audio", d.Lexemes.MissingAudio)
		api("GET /file/url/{titles}", d.Lexemes.FileURLs)
		apiWrite("POST /lexemes/create", d.Lexemes.Create)
		apiWrite("POST /lexemes/glosses/add", d.Lexemes.AddGloss)
		apiWrite("POST /lexemes/translations/add", d.Lexemes.AddTranslation)
		apiWrite("POST /lexeme/audio/add", d.Lexemes.AddAudio)
	}

	return mux
}
