package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var propertyIDPattern = regexp.MustCompile(`^P[1-9][0-9]*$`)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.ConsumerKey == "" || c.Auth.ConsumerSecret == "" {
		return fmt.Errorf("auth.consumer_key and auth.consumer_secret are required")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be > 0")
	}

	for name, raw := range map[string]string{
		"auth.oauth_url":        c.Auth.OAuthURL,
		"wikibase.api_url":      c.Wikibase.APIURL,
		"commons.api_url":       c.Commons.APIURL,
		"commons.file_base_url": c.Commons.FileBaseURL,
	} {
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if err := c.Wikibase.validate(); err != nil {
		return fmt.Errorf("wikibase: %w", err)
	}
	if c.Commons.RequestTimeout <= 0 {
		return fmt.Errorf("commons.request_timeout must be > 0")
	}

	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if c.CORS.AllowCredentials && !hasExplicitOrigin(c.CORS.AllowedOrigins) {
		return fmt.Errorf("cors.allow_credentials requires explicit cors.allowed_origins, not only %q", "*")
	}

	return nil
}

// Calls one audio item makes upstream: token and upload on the media
// repository, then read, two tokens, claim and qualifier on the store.
const (
	audioItemMediaCalls = 2
	audioItemStoreCalls = 5
)

// AudioItemBudget is the worst-case duration of one audio batch item.
func (c *Config) AudioItemBudget() time.Duration {
	return audioItemMediaCalls*c.Commons.RequestTimeout + audioItemStoreCalls*c.Wikibase.RequestTimeout
}

func (c *Config) validateTimeouts() error {
	s := c.Server
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 {
		return fmt.Errorf("server.read_timeout and server.write_timeout must be > 0")
	}
	if s.WriteTimeout < c.Wikibase.RequestTimeout {
		return fmt.Errorf("server.write_timeout (%s) must cover wikibase.request_timeout (%s)", s.WriteTimeout, c.Wikibase.RequestTimeout)
	}
	if s.BatchTimeout < s.WriteTimeout || s.BatchTimeout < s.ReadTimeout {
		return fmt.Errorf("server.batch_timeout (%s) must not be shorter than the read and write timeouts", s.BatchTimeout)
	}
	// The batch keeps a twentieth of its budget for writing the response.
	if usable, item := s.BatchTimeout-s.BatchTimeout/20, c.AudioItemBudget(); usable < item {
		return fmt.Errorf("server.batch_timeout (%s) leaves %s for items, one audio item may take %s", s.BatchTimeout, usable, item)
	}
	return nil
}

func hasExplicitOrigin(origins string) bool {
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" && o != "*" {
			return true
		}
	}
	return false
}

func (w *WikibaseConfig) validate() error {
	if w.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0")
	}
	if w.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be > 0 (got %d)", w.SearchLimit)
	}
	for name, id := range map[string]string{
		"audio_property": w.AudioProperty,
		"lang_property":  w.LangProperty,
		"trans_property": w.TransProperty,
		"image_property": w.ImageProperty,
	} {
		if !propertyIDPattern.MatchString(id) {
			return fmt.Errorf("%s %q is not a property id", name, id)
		}
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", raw)
	}
	return nil
}
