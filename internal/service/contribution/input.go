package contribution

import (
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// ListInput holds the parameters for listing contributions.
type ListInput struct {
	Username string
	LangCode string
	EditType string
	// Mine restricts the listing to the authenticated user.
	Mine   bool
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Username) > 255 {
		errs = append(errs, domain.FieldError{Field: "username", Message: "max 255 characters"})
	}
	if len(i.LangCode) > 16 {
		errs = append(errs, domain.FieldError{Field: "lang_code", Message: "max 16 characters"})
	}
	if et := strings.TrimSpace(i.EditType); et != "" && !domain.EditType(et).IsValid() {
		errs = append(errs, domain.FieldError{Field: "edit_type", Message: "unknown edit type"})
	}
	if i.Limit < 0 || i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i ListInput) filter() domain.ContributionFilter {
	limit := i.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	return domain.ContributionFilter{
		Username: strings.TrimSpace(i.Username),
		LangCode: strings.TrimSpace(i.LangCode),
		EditType: domain.EditType(strings.TrimSpace(i.EditType)),
		Limit:    limit,
		Offset:   i.Offset,
	}
}
