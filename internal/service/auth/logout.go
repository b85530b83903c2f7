package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/agpb-backend/internal/auth"
	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

// Logout clears the stored session id, invalidating every session token
// issued for the user.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) Logout(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.users.SetSessionToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.Int64("user_id", userID))
	return nil
}

// ResolveSession validates a session token and returns the user it belongs
// to with the remote credentials it carries.
// Returns ErrUnauthorized if the token is invalid, expired or superseded.
func (s *Service) ResolveSession(ctx context.Context, token string) (*domain.User, domain.Authorization, error) {
	session, err := s.jwt.ValidateSessionToken(token)
	if err != nil {
		return nil, domain.Authorization{}, domain.ErrUnauthorized
	}

	user, err := s.users.GetBySessionToken(ctx, session.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Authorization{}, domain.ErrUnauthorized
		}
		return nil, domain.Authorization{}, fmt.Errorf("auth.ResolveSession: %w", err)
	}
	if session.Username != "" && session.Username != user.Username {
		s.log.WarnContext(ctx, "session subject mismatch", slog.Int64("user_id", user.ID))
		return nil, domain.Authorization{}, domain.ErrUnauthorized
	}

	authz := session.Authorization()
	authz.Username = user.Username
	return user, authz, nil
}

func accessOf(authz domain.Authorization) auth.AccessToken {
	return auth.AccessToken{Key: authz.AccessToken, Secret: authz.AccessSecret}
}
