// Package commons uploads pronunciation recordings to the media repository
// and resolves file URLs.
package commons

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/adapter/mediawiki"
	"github.com/heartmarshall/agpb-backend/internal/domain"
)

const filePrefix = "File:"

// Client is the media repository adapter.
type Client struct {
	api         *mediawiki.Client
	fileBaseURL string
	license     string
	log         *slog.Logger
}

// NewClient wraps api. fileBaseURL prefixes bare file names to form a
// download URL; license is the wikitext license template for uploads.
func NewClient(logger *slog.Logger, api *mediawiki.Client, fileBaseURL, license string) *Client {
	if license == "" {
		license = "{{cc-by-sa-4.0}}"
	}
	return &Client{
		api:         api,
		fileBaseURL: fileBaseURL,
		license:     license,
		log:         logger.With("adapter", "commons"),
	}
}

// NegotiateEditToken fetches a fresh CSRF token for the media repository.
func (c *Client) NegotiateEditToken(ctx context.Context, authz domain.Authorization) (domain.EditSession, error) {
	return c.api.NegotiateEditToken(ctx, authz)
}

// Upload stores in.Content under in.Filename. Identical content already on
// the repository is reported as a duplicate and its existing name returned.
func (c *Client) Upload(ctx context.Context, session domain.EditSession, in domain.MediaUpload) (domain.UploadResult, error) {
	params := url.Values{
		"action":   {"upload"},
		"filename": {in.Filename},
		"token":    {session.CSRFToken},
		"text":     {c.pageText(in.LanguageLabel)},
		"comment":  {"Pronunciation upload by " + session.Auth.Username},
	}

	var resp uploadResponse
	if err := c.api.PostFile(ctx, session.Auth, params, in.Filename, in.Content, &resp); err != nil {
		return domain.UploadResult{}, fmt.Errorf("commons.Upload %s: %w", in.Filename, err)
	}

	up := resp.Upload
	switch {
	case up.Result == "Success":
		name := up.Filename
		if name == "" {
			name = in.Filename
		}
		c.log.InfoContext(ctx, "file uploaded", slog.String("filename", name))
		return domain.UploadResult{Filename: name}, nil
	case len(up.Warnings.Duplicate) > 0:
		existing := up.Warnings.Duplicate[0]
		c.log.InfoContext(ctx, "duplicate upload, reusing existing file",
			slog.String("filename", in.Filename),
			slog.String("existing", existing),
		)
		return domain.UploadResult{Filename: existing, Duplicate: true}, nil
	case up.Warnings.Nochange != nil:
		existing := up.Warnings.Exists
		if existing == "" {
			existing = in.Filename
		}
		c.log.InfoContext(ctx, "file already holds this content",
			slog.String("filename", existing),
		)
		return domain.UploadResult{Filename: existing, Duplicate: true}, nil
	case up.Warnings.Exists != "":
		return domain.UploadResult{}, fmt.Errorf("commons.Upload %s: name taken by %s: %w", in.Filename, up.Warnings.Exists, domain.ErrAlreadyExists)
	default:
		return domain.UploadResult{}, fmt.Errorf("commons.Upload %s: result %q: %w", in.Filename, up.Result, domain.ErrRejected)
	}
}

func (c *Client) pageText(languageLabel string) string {
	return "\n== {{int:license-header}} ==\n" + c.license + "\n\n[[Category:" + languageLabel + " Pronunciation]]"
}

// FileURLs resolves titles ("File:X.ogg" or "X.ogg") to their URLs, sorted
// by title. URL is empty for missing files.
func (c *Client) FileURLs(ctx context.Context, titles []string) ([]domain.MediaFile, error) {
	normalized := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if !strings.HasPrefix(t, filePrefix) {
			t = filePrefix + t
		}
		normalized = append(normalized, t)
	}
	if len(normalized) == 0 {
		return nil, domain.NewValidationError("titles", "required")
	}

	params := url.Values{
		"action": {"query"},
		"titles": {strings.Join(normalized, "|")},
		"prop":   {"imageinfo"},
		"iiprop": {"url"},
	}

	var resp imageInfoResponse
	if err := c.api.Get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("commons.FileURLs: %w", err)
	}

	files := make([]domain.MediaFile, 0, len(resp.Query.Pages))
	for _, page := range resp.Query.Pages {
		f := domain.MediaFile{Title: page.Title}
		if page.Missing == nil && len(page.ImageInfo) > 0 {
			f.URL = page.ImageInfo[0].URL
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Title < files[j].Title })
	return files, nil
}

// FilePathURL returns a direct URL for a bare file name.
func (c *Client) FilePathURL(name string) string {
	if name == "" {
		return ""
	}
	return c.fileBaseURL + url.PathEscape(strings.ReplaceAll(strings.TrimPrefix(name, filePrefix), " ", "_"))
}
