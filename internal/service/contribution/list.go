package contribution

import (
	"context"
	"fmt"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

// List returns a page of contributions, newest first, with the total
// number of rows matching the filter.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Contribution, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	f := input.filter()
	if input.Mine {
		authz, ok := ctxutil.AuthorizationFromCtx(ctx)
		if !ok {
			return nil, 0, domain.ErrUnauthorized
		}
		f.Username = authz.Username
	}

	items, err := s.contributions.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list contributions: %w", err)
	}

	total, err := s.contributions.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("count contributions: %w", err)
	}

	if items == nil {
		items = []domain.Contribution{}
	}
	return items, total, nil
}

// GetByID returns a single contribution.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.Contribution, error) {
	if id <= 0 {
		return domain.Contribution{}, domain.NewValidationError("id", "must be positive")
	}

	c, err := s.contributions.GetByID(ctx, id)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("get contribution: %w", err)
	}
	return c, nil
}
