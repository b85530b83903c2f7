package mediawiki

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// anonymousToken is what the API hands out to unauthenticated sessions.
const anonymousToken = `+\`

type tokenResponse struct {
	Query struct {
		Tokens struct {
			CSRFToken string `json:"csrftoken"`
		} `json:"tokens"`
	} `json:"query"`
}

// NegotiateEditToken fetches a fresh CSRF token signed with authz. Tokens are
// never cached; every independent write negotiates its own.
func (c *Client) NegotiateEditToken(ctx context.Context, authz domain.Authorization) (domain.EditSession, error) {
	if !authz.Valid() {
		return domain.EditSession{}, fmt.Errorf("%s token: %w", c.name, domain.ErrPermissionDenied)
	}

	params := url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {"csrf"},
	}

	var resp tokenResponse
	err := c.GetSigned(ctx, authz, params, &resp)
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			return domain.EditSession{}, fmt.Errorf("%s token: %w: %w", c.name, domain.ErrPermissionDenied, apiErr)
		}
		return domain.EditSession{}, fmt.Errorf("%s token: %w", c.name, err)
	}

	token := resp.Query.Tokens.CSRFToken
	if token == "" || token == anonymousToken {
		return domain.EditSession{}, fmt.Errorf("%s token: session not authenticated: %w", c.name, domain.ErrPermissionDenied)
	}

	return domain.EditSession{CSRFToken: token, Auth: authz}, nil
}
