package auth

import "github.com/heartmarshall/agpb-backend/internal/domain"

// CompleteInput holds the parameters of the OAuth callback.
type CompleteInput struct {
	State      string
	OAuthToken string
	Verifier   string
}

// Validate validates the callback input.
func (i CompleteInput) Validate() error {
	var errs []domain.FieldError

	if i.State == "" {
		errs = append(errs, domain.FieldError{Field: "state", Message: "required"})
	} else if len(i.State) > 4096 {
		errs = append(errs, domain.FieldError{Field: "state", Message: "too long"})
	}

	if i.Verifier == "" {
		errs = append(errs, domain.FieldError{Field: "oauth_verifier", Message: "required"})
	} else if len(i.Verifier) > 512 {
		errs = append(errs, domain.FieldError{Field: "oauth_verifier", Message: "too long"})
	}

	if len(i.OAuthToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "oauth_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
