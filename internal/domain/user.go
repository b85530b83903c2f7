package domain

import (
	"strings"
	"time"
)

// DefaultPreferredLanguages is assigned to users on first login.
const DefaultPreferredLanguages = "de,en"

// User is a contributor known to this backend. Identity is owned by the
// remote wiki; only the username and local preferences are stored here.
type User struct {
	ID        int64
	Username  string
	PrefLangs string
	// SessionToken is the per-login random token embedded in session JWTs.
	// Empty means the user is logged out.
	SessionToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PreferredLanguages splits PrefLangs into trimmed, non-empty codes.
func (u *User) PreferredLanguages() []string {
	var langs []string
	for _, l := range strings.Split(u.PrefLangs, ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

// Authorization is the per-request credential bundle used to sign writes
// against the remote wiki on behalf of a user. It is derived from a decoded
// session token and never persisted.
type Authorization struct {
	Username     string
	AccessToken  string
	AccessSecret string
}

// Valid reports whether both halves of the user-level key pair are present.
func (a Authorization) Valid() bool {
	return a.AccessToken != "" && a.AccessSecret != ""
}

// EditSession is the result of edit-token negotiation: a CSRF token bound
// to the authorization that obtained it. Writes must be signed with the same
// authorization.
type EditSession struct {
	CSRFToken string
	Auth      Authorization
}
