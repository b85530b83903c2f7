package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

// Initiate starts the OAuth handshake and returns the authorization URL with
// a signed state carrying the request token pair.
func (s *Service) Initiate(ctx context.Context) (*LoginStart, error) {
	request, redirect, err := s.handshake.Initiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.Initiate: %w", err)
	}

	state, err := s.jwt.GenerateStateToken(request)
	if err != nil {
		return nil, fmt.Errorf("auth.Initiate state: %w", err)
	}

	return &LoginStart{RedirectURL: redirect, State: state}, nil
}

// Complete finishes the handshake: it exchanges the verifier for an access
// pair, identifies the user, creates the user on first login and rotates the
// session id so older session tokens stop resolving.
func (s *Service) Complete(ctx context.Context, input CompleteInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	request, err := s.jwt.ValidateStateToken(input.State)
	if err != nil {
		s.log.WarnContext(ctx, "oauth state rejected", slog.String("error", err.Error()))
		return nil, domain.ErrUnauthorized
	}
	if input.OAuthToken != "" && input.OAuthToken != request.Key {
		return nil, fmt.Errorf("auth.Complete: request token mismatch: %w", domain.ErrUnauthorized)
	}

	access, err := s.handshake.Complete(ctx, request, input.Verifier)
	if err != nil {
		return nil, fmt.Errorf("auth.Complete exchange: %w", err)
	}

	identity, err := s.handshake.Identify(ctx, access)
	if err != nil {
		return nil, fmt.Errorf("auth.Complete identify: %w", err)
	}

	var user *domain.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.Upsert(txCtx, identity.Username)
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}
		sessionID := s.newID()
		if err := s.users.SetSessionToken(txCtx, u.ID, sessionID); err != nil {
			return fmt.Errorf("rotate session: %w", err)
		}
		u.SessionToken = sessionID
		user = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Complete: %w", err)
	}

	result, err := s.issueSession(user, access)
	if err != nil {
		return nil, fmt.Errorf("auth.Complete: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))

	return result, nil
}

// Reissue signs a fresh session token for an already authenticated request,
// keeping the current session id.
func (s *Service) Reissue(ctx context.Context) (*AuthResult, error) {
	authz, ok := ctxutil.AuthorizationFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByUsername(ctx, authz.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Reissue: %w", err)
	}
	if user.SessionToken == "" {
		return nil, domain.ErrUnauthorized
	}

	result, err := s.issueSession(user, accessOf(authz))
	if err != nil {
		return nil, fmt.Errorf("auth.Reissue: %w", err)
	}
	return result, nil
}
