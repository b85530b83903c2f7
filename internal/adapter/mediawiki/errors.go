package mediawiki

import (
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

var permissionCodes = map[string]bool{
	"badtoken":         true,
	"notoken":          true,
	"permissiondenied": true,
	"assertuserfailed": true,
	"blocked":          true,
	"autoblocked":      true,
	"protectedpage":    true,
	"readonly":         true,
}

// mapAPIError classifies a remote error envelope.
func mapAPIError(code, info string) *domain.APIError {
	return &domain.APIError{Code: code, Info: info, Kind: classify(code, info)}
}

func classify(code, info string) error {
	switch {
	case code == "no-such-entity", code == "missingtitle", code == "nosuchrevid":
		return domain.ErrNotFound
	case code == "editconflict":
		return domain.ErrConflict
	case code == "failed-save" && strings.Contains(strings.ToLower(info), "conflict"):
		return domain.ErrConflict
	case permissionCodes[code], strings.HasPrefix(code, "mwoauth-"):
		return domain.ErrPermissionDenied
	case code == "maxlag", code == "ratelimited", code == "internal_api_error_DBQueryError":
		return domain.ErrUpstreamUnavailable
	default:
		return domain.ErrRejected
	}
}
