package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the user information returned by the remote wiki's OAuth
// identify endpoint.
type Identity struct {
	Username  string
	CentralID string
	Blocked   bool
	Grants    []string
}

type identityClaims struct {
	jwt.RegisteredClaims
	Nonce    string   `json:"nonce"`
	Username string   `json:"username"`
	Blocked  bool     `json:"blocked"`
	Grants   []string `json:"grants"`
}

// IdentityVerifier checks identify responses, which are HS256 tokens signed
// with the consumer secret and addressed to the consumer key.
type IdentityVerifier struct {
	consumerKey    string
	consumerSecret []byte
	issuer         string
}

// NewIdentityVerifier creates a verifier. issuer is the origin of the wiki
// that issues identities, e.g. "https://meta.wikimedia.org".
func NewIdentityVerifier(consumerKey, consumerSecret, issuer string) *IdentityVerifier {
	return &IdentityVerifier{
		consumerKey:    consumerKey,
		consumerSecret: []byte(consumerSecret),
		issuer:         issuer,
	}
}

// Verify parses an identify token and checks signature, audience, issuer
// and nonce.
func (v *IdentityVerifier) Verify(tokenString, nonce string) (Identity, error) {
	var claims identityClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.consumerSecret, nil
	}, jwt.WithAudience(v.consumerKey), jwt.WithIssuer(v.issuer))
	if err != nil {
		return Identity{}, fmt.Errorf("parse identity: %w", err)
	}
	if nonce != "" && claims.Nonce != nonce {
		return Identity{}, fmt.Errorf("identity nonce mismatch")
	}
	if claims.Username == "" {
		return Identity{}, fmt.Errorf("identity has no username")
	}
	return Identity{
		Username:  claims.Username,
		CentralID: claims.Subject,
		Blocked:   claims.Blocked,
		Grants:    claims.Grants,
	}, nil
}
