// Package mediawiki is a thin client for the MediaWiki Action API. It signs
// requests with OAuth 1.0a on behalf of a user, decodes error envelopes into
// domain errors, and negotiates CSRF tokens for writes.
package mediawiki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/internal/observe"
)

// Options configures a Client for one wiki endpoint.
type Options struct {
	// Name labels metrics and logs ("wikibase", "commons").
	Name           string
	APIURL         string
	UserAgent      string
	Timeout        time.Duration
	ConsumerKey    string
	ConsumerSecret string
}

// Client talks to a single api.php endpoint.
type Client struct {
	name       string
	apiURL     string
	userAgent  string
	timeout    time.Duration
	oauth      *oauth1.Config
	httpClient *http.Client
	metrics    *observe.Metrics
	log        *slog.Logger
}

// NewClient creates a Client for opts.APIURL.
func NewClient(logger *slog.Logger, metrics *observe.Metrics, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		name:      opts.Name,
		apiURL:    opts.APIURL,
		userAgent: opts.UserAgent,
		timeout:   timeout,
		oauth: &oauth1.Config{
			ConsumerKey:    opts.ConsumerKey,
			ConsumerSecret: opts.ConsumerSecret,
		},
		httpClient: &http.Client{},
		metrics:    metrics,
		log:        logger.With("adapter", opts.Name),
	}
}

// APIURL returns the endpoint this client talks to.
func (c *Client) APIURL() string { return c.apiURL }

// Get issues an unsigned read and decodes the JSON answer into out.
func (c *Client) Get(ctx context.Context, params url.Values, out any) error {
	return c.do(ctx, nil, params, c.getRequest(params), out)
}

// GetSigned issues a read signed with authz.
func (c *Client) GetSigned(ctx context.Context, authz domain.Authorization, params url.Values, out any) error {
	return c.do(ctx, &authz, params, c.getRequest(params), out)
}

// Ping checks that the endpoint answers a siteinfo query.
func (c *Client) Ping(ctx context.Context) error {
	var out struct{}
	return c.Get(ctx, url.Values{"action": {"query"}, "meta": {"siteinfo"}}, &out)
}

func (c *Client) getRequest(params url.Values) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+withFormat(params).Encode(), nil)
	}
}

// Post issues a form-encoded write signed with authz.
func (c *Client) Post(ctx context.Context, authz domain.Authorization, params url.Values, out any) error {
	return c.do(ctx, &authz, params, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(withFormat(params).Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, out)
}

// PostFile issues a multipart write signed with authz, attaching content
// under the form field "file".
func (c *Client) PostFile(ctx context.Context, authz domain.Authorization, params url.Values, filename string, content []byte, out any) error {
	return c.do(ctx, &authz, params, func(ctx context.Context) (*http.Request, error) {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		for key, values := range withFormat(params) {
			for _, v := range values {
				if err := w.WriteField(key, v); err != nil {
					return nil, err
				}
			}
		}
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(content); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		return req, nil
	}, out)
}

func (c *Client) do(
	ctx context.Context,
	authz *domain.Authorization,
	params url.Values,
	build func(context.Context) (*http.Request, error),
	out any,
) (err error) {
	action := params.Get("action")
	start := time.Now()
	defer func() {
		c.metrics.RecordRemote(ctx, c.name, action, observe.Outcome(err), time.Since(start))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := build(ctx)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", c.name, action, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client(ctx, authz).Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "remote request failed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s %s: %w: %v", c.name, action, domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %v", c.name, action, domain.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "remote request returned non-200",
			slog.String("action", action),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%s %s: status %d: %w", c.name, action, resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var envelope struct {
		Error *struct {
			Code string `json:"code"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%s %s: decode json: %w: %v", c.name, action, domain.ErrUpstreamUnavailable, err)
	}
	if envelope.Error != nil {
		apiErr := mapAPIError(envelope.Error.Code, envelope.Error.Info)
		c.log.WarnContext(ctx, "remote api error",
			slog.String("action", action),
			slog.String("code", apiErr.Code),
			slog.String("info", apiErr.Info),
		)
		return fmt.Errorf("%s %s: %w", c.name, action, apiErr)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%s %s: decode json: %w: %v", c.name, action, domain.ErrInconsistentState, err)
		}
	}

	c.log.DebugContext(ctx, "remote request ok", slog.String("action", action))
	return nil
}

func (c *Client) client(ctx context.Context, authz *domain.Authorization) *http.Client {
	if authz == nil {
		return c.httpClient
	}
	ctx = context.WithValue(ctx, oauth1.HTTPClient, c.httpClient)
	return c.oauth.Client(ctx, oauth1.NewToken(authz.AccessToken, authz.AccessSecret))
}

func withFormat(params url.Values) url.Values {
	out := make(url.Values, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out.Set("format", "json")
	return out
}

// IsAPIError reports whether err carries a remote error envelope with code.
func IsAPIError(err error, code string) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
