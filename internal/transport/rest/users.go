package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/internal/service/user"
)

type userService interface {
	Me(ctx context.Context) (*domain.User, error)
	UpdatePreferredLanguages(ctx context.Context, input user.UpdateLanguagesInput) (*domain.User, error)
}

// UserHandler serves the profile of the authenticated user.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	PrefLangs string `json:"pref_langs"`
}

type updateUserRequest struct {
	PrefLangs string `json:"pref_langs"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, PrefLangs: u.PrefLangs}
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Update handles PATCH /users/me.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(w, r, 4<<10, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	u, err := h.svc.UpdatePreferredLanguages(r.Context(), user.UpdateLanguagesInput{
		Languages: strings.Split(req.PrefLangs, ","),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}
