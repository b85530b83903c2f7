package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// stateTTL bounds the time between starting and completing an OAuth login.
const stateTTL = 10 * time.Minute

// JWTManager issues and validates the HS256 tokens this backend hands to
// clients: session tokens carrying the user's remote access key pair, and
// short-lived OAuth state tokens carrying the request token pair.
type JWTManager struct {
	secret     []byte
	issuer     string
	sessionTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, sessionTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		issuer:     issuer,
		sessionTTL: sessionTTL,
	}
}

// AccessToken is a remote OAuth key pair as embedded in tokens.
type AccessToken struct {
	Key    string `json:"key"`
	Secret string `json:"secret"`
}

// Session is the decoded content of a session token.
type Session struct {
	Username string
	// Token matches the user's stored session token while the login is live.
	Token  string
	Access AccessToken
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Token       string      `json:"token"`
	AccessToken AccessToken `json:"access_token"`
}

// GenerateSessionToken signs s with the username as subject.
func (m *JWTManager) GenerateSessionToken(s Session) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Username,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Token:       s.Token,
		AccessToken: s.Access,
	}
	return m.sign(claims)
}

// ValidateSessionToken parses and validates a session token.
func (m *JWTManager) ValidateSessionToken(tokenString string) (Session, error) {
	var claims sessionClaims
	if err := m.parse(tokenString, &claims); err != nil {
		return Session{}, err
	}
	if claims.Token == "" || claims.AccessToken.Key == "" || claims.AccessToken.Secret == "" {
		return Session{}, fmt.Errorf("incomplete session claims")
	}
	return Session{Username: claims.Subject, Token: claims.Token, Access: claims.AccessToken}, nil
}

// SessionTTL is the lifetime of issued session tokens.
func (m *JWTManager) SessionTTL() time.Duration { return m.sessionTTL }

type stateClaims struct {
	jwt.RegisteredClaims
	Request AccessToken `json:"request_token"`
}

// GenerateStateToken wraps an OAuth request token pair for the round trip
// through the remote authorization page.
func (m *JWTManager) GenerateStateToken(request AccessToken) (string, error) {
	now := time.Now()
	return m.sign(stateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Request: request,
	})
}

// ValidateStateToken returns the request token pair of a state token.
func (m *JWTManager) ValidateStateToken(tokenString string) (AccessToken, error) {
	var claims stateClaims
	if err := m.parse(tokenString, &claims); err != nil {
		return AccessToken{}, err
	}
	if claims.Request.Key == "" || claims.Request.Secret == "" {
		return AccessToken{}, fmt.Errorf("incomplete state claims")
	}
	return claims.Request, nil
}

// NewSessionID returns a fresh random per-login token.
func NewSessionID() string {
	return uuid.NewString()
}

// Authorization converts a session into the per-request remote credentials.
func (s Session) Authorization() domain.Authorization {
	return domain.Authorization{
		Username:     s.Username,
		AccessToken:  s.Access.Key,
		AccessSecret: s.Access.Secret,
	}
}

func (m *JWTManager) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) parse(tokenString string, claims jwt.Claims) error {
	if tokenString == "" {
		return fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token claims")
	}
	return nil
}
