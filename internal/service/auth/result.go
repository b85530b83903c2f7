package auth

import "github.com/heartmarshall/agpb-backend/internal/domain"

// LoginStart is returned by Initiate.
type LoginStart struct {
	// RedirectURL is the remote authorization page the user must visit.
	RedirectURL string
	// State carries the signed request token pair until the callback.
	State string
}

// AuthResult is returned by Complete and Reissue.
type AuthResult struct {
	Token string
	User  *domain.User
}
