package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

// Me returns the authenticated user's profile.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Me: %w", err)
	}

	return user, nil
}

// UpdatePreferredLanguages replaces the authenticated user's language list
// and returns the updated profile.
func (s *Service) UpdatePreferredLanguages(ctx context.Context, input UpdateLanguagesInput) (*domain.User, error) {
	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Extract userID from context
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	// Step 3: Every code must be in the language table
	codes := input.normalized()
	for _, code := range codes {
		if _, err := s.languages.Lookup(code); err != nil {
			return nil, err
		}
	}

	// Step 4: Store and reload
	if err := s.users.UpdatePreferredLanguages(ctx, userID, strings.Join(codes, ",")); err != nil {
		return nil, fmt.Errorf("user.UpdatePreferredLanguages: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.UpdatePreferredLanguages reload: %w", err)
	}

	s.log.InfoContext(ctx, "preferred languages updated",
		slog.Int64("user_id", userID),
		slog.String("pref_langs", user.PrefLangs))

	return user, nil
}
