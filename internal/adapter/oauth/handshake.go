// Package oauth runs the MediaWiki OAuth 1.0a login handshake: request
// token, user authorization, access token and identity lookup.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/heartmarshall/agpb-backend/internal/auth"
	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// Options configures a Handshake.
type Options struct {
	// IndexURL is the wiki's index.php, e.g. "https://meta.wikimedia.org/w/index.php".
	IndexURL       string
	ConsumerKey    string
	ConsumerSecret string
	// CallbackURL is "oob" for consumers registered with a fixed callback.
	CallbackURL string
	UserAgent   string
	Timeout     time.Duration
}

// Handshake performs the three-legged OAuth flow against one wiki.
type Handshake struct {
	config     *oauth1.Config
	indexURL   string
	userAgent  string
	httpClient *http.Client
	identity   *auth.IdentityVerifier
	log        *slog.Logger
}

// NewHandshake creates a Handshake from opts.
func NewHandshake(logger *slog.Logger, opts Options) (*Handshake, error) {
	u, err := url.Parse(opts.IndexURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("oauth: invalid index url %q", opts.IndexURL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	callback := opts.CallbackURL
	if callback == "" {
		callback = "oob"
	}

	return &Handshake{
		config: &oauth1.Config{
			ConsumerKey:    opts.ConsumerKey,
			ConsumerSecret: opts.ConsumerSecret,
			CallbackURL:    callback,
			Endpoint: oauth1.Endpoint{
				RequestTokenURL: special(opts.IndexURL, "initiate"),
				AuthorizeURL:    special(opts.IndexURL, "authorize") + "&oauth_consumer_key=" + url.QueryEscape(opts.ConsumerKey),
				AccessTokenURL:  special(opts.IndexURL, "token"),
			},
		},
		indexURL:   opts.IndexURL,
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
		identity:   auth.NewIdentityVerifier(opts.ConsumerKey, opts.ConsumerSecret, u.Scheme+"://"+u.Host),
		log:        logger.With("adapter", "oauth"),
	}, nil
}

func special(indexURL, page string) string {
	return indexURL + "?title=Special:OAuth/" + page
}

// Initiate obtains a request token and the URL the user must visit to
// authorize it.
func (h *Handshake) Initiate(ctx context.Context) (auth.AccessToken, string, error) {
	key, secret, err := h.configFor(ctx, nil).RequestToken()
	if err != nil {
		return auth.AccessToken{}, "", fmt.Errorf("oauth initiate: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	authURL, err := h.config.AuthorizationURL(key)
	if err != nil {
		return auth.AccessToken{}, "", fmt.Errorf("oauth authorize url: %w", err)
	}
	return auth.AccessToken{Key: key, Secret: secret}, authURL.String(), nil
}

// Complete exchanges an authorized request token for an access token.
func (h *Handshake) Complete(ctx context.Context, request auth.AccessToken, verifier string) (auth.AccessToken, error) {
	if verifier == "" {
		return auth.AccessToken{}, domain.NewValidationError("oauth_verifier", "required")
	}
	key, secret, err := h.configFor(ctx, nil).AccessToken(request.Key, request.Secret, verifier)
	var transportErr *url.Error
	if errors.As(err, &transportErr) {
		return auth.AccessToken{}, fmt.Errorf("oauth token: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	if err != nil {
		h.log.WarnContext(ctx, "oauth token exchange failed", slog.String("error", err.Error()))
		return auth.AccessToken{}, fmt.Errorf("oauth token: %v: %w", err, domain.ErrUnauthorized)
	}
	return auth.AccessToken{Key: key, Secret: secret}, nil
}

// Identify asks the wiki who owns access and verifies the signed answer.
// The answer must echo the nonce the identify request was signed with.
func (h *Handshake) Identify(ctx context.Context, access auth.AccessToken) (auth.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, h.httpClient.Timeout)
	defer cancel()

	nonce := oauth1.Base64Noncer{}.Nonce()
	clientCtx := context.WithValue(ctx, oauth1.HTTPClient, h.httpClient)
	client := h.configFor(ctx, fixedNoncer(nonce)).Client(clientCtx, oauth1.NewToken(access.Key, access.Secret))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, special(h.indexURL, "identify"), nil)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("oauth identify: %w", err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("oauth identify: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return auth.Identity{}, fmt.Errorf("oauth identify: read body: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return auth.Identity{}, fmt.Errorf("oauth identify: status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	id, err := h.identity.Verify(strings.TrimSpace(string(body)), nonce)
	if err != nil {
		h.log.WarnContext(ctx, "identity rejected", slog.String("error", err.Error()))
		return auth.Identity{}, fmt.Errorf("oauth identify: %v: %w", err, domain.ErrUnauthorized)
	}
	if id.Blocked {
		return auth.Identity{}, fmt.Errorf("oauth identify: user %s is blocked: %w", id.Username, domain.ErrPermissionDenied)
	}

	h.log.DebugContext(ctx, "identity verified", slog.String("username", id.Username))
	return id, nil
}

// configFor returns a copy of the consumer config whose token requests are
// bound to ctx and the handshake timeout. A non-nil noncer replaces the
// random default.
func (h *Handshake) configFor(ctx context.Context, noncer oauth1.Noncer) *oauth1.Config {
	cfg := *h.config
	cfg.HTTPClient = &http.Client{
		Timeout:   h.httpClient.Timeout,
		Transport: ctxTransport{ctx: ctx, base: h.httpClient.Transport},
	}
	if noncer != nil {
		cfg.Noncer = noncer
	}
	return &cfg
}

type fixedNoncer string

func (n fixedNoncer) Nonce() string { return string(n) }

// ctxTransport attaches ctx to requests built without one.
type ctxTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t ctxTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req.WithContext(t.ctx))
}
