package user

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePreferredLanguages(ctx context.Context, id int64, prefLangs string) error
}

// languageTable resolves supported language codes.
type languageTable interface {
	Lookup(code string) (domain.Language, error)
}

// Service implements user profile operations.
type Service struct {
	log       *slog.Logger
	users     userRepo
	languages languageTable
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, languages languageTable) *Service {
	return &Service{
		log:       logger.With("service", "user"),
		users:     users,
		languages: languages,
	}
}
