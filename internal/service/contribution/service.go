package contribution

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// Paging bounds for ledger listings.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// contributionRepo defines the ledger reads needed by contribution service.
type contributionRepo interface {
	GetByID(ctx context.Context, id int64) (domain.Contribution, error)
	List(ctx context.Context, f domain.ContributionFilter) ([]domain.Contribution, error)
	Count(ctx context.Context, f domain.ContributionFilter) (int, error)
}

// Service exposes the contribution ledger read-only.
type Service struct {
	log           *slog.Logger
	contributions contributionRepo
}

// NewService creates a new contribution service instance.
func NewService(logger *slog.Logger, contributions contributionRepo) *Service {
	return &Service{
		log:           logger.With("service", "contribution"),
		contributions: contributions,
	}
}
