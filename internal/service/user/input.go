package user

import (
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

const maxPreferredLanguages = 10

// UpdateLanguagesInput holds parameters for the preferred languages update.
type UpdateLanguagesInput struct {
	Languages []string
}

// Validate validates the update languages input.
func (i UpdateLanguagesInput) Validate() error {
	var errs []domain.FieldError

	codes := i.normalized()
	if len(codes) == 0 {
		errs = append(errs, domain.FieldError{Field: "pref_langs", Message: "required"})
	} else if len(codes) > maxPreferredLanguages {
		errs = append(errs, domain.FieldError{Field: "pref_langs", Message: "too many languages"})
	}

	for _, code := range codes {
		if len(code) > 16 || strings.ContainsAny(code, ", ") {
			errs = append(errs, domain.FieldError{Field: "pref_langs", Message: "invalid language code: " + code})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// normalized trims the codes and drops blanks and duplicates, keeping order.
func (i UpdateLanguagesInput) normalized() []string {
	seen := make(map[string]bool, len(i.Languages))
	var out []string
	for _, code := range i.Languages {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
