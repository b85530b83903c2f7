package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/agpb-backend/internal/auth"
	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// handshake defines the remote OAuth flow needed by auth service.
type handshake interface {
	Initiate(ctx context.Context) (auth.AccessToken, string, error)
	Complete(ctx context.Context, request auth.AccessToken, verifier string) (auth.AccessToken, error)
	Identify(ctx context.Context, access auth.AccessToken) (auth.Identity, error)
}

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetBySessionToken(ctx context.Context, token string) (*domain.User, error)
	Upsert(ctx context.Context, username string) (*domain.User, error)
	SetSessionToken(ctx context.Context, id int64, token string) error
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// jwtManager defines the token management interface needed by auth service.
type jwtManager interface {
	GenerateSessionToken(s auth.Session) (string, error)
	ValidateSessionToken(token string) (auth.Session, error)
	GenerateStateToken(request auth.AccessToken) (string, error)
	ValidateStateToken(token string) (auth.AccessToken, error)
}

// Service implements login, session resolution and logout.
type Service struct {
	log       *slog.Logger
	handshake handshake
	users     userRepo
	tx        txManager
	jwt       jwtManager
	newID     func() string
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	hs handshake,
	users userRepo,
	tx txManager,
	jwt jwtManager,
) *Service {
	return &Service{
		log:       logger.With("service", "auth"),
		handshake: hs,
		users:     users,
		tx:        tx,
		jwt:       jwt,
		newID:     auth.NewSessionID,
	}
}

// issueSession signs a session token binding the user's current session id
// to the remote access pair.
func (s *Service) issueSession(user *domain.User, access auth.AccessToken) (*AuthResult, error) {
	token, err := s.jwt.GenerateSessionToken(auth.Session{
		Username: user.Username,
		Token:    user.SessionToken,
		Access:   access,
	})
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
