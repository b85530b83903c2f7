// Package wikibase reads and writes lexeme entities through the Wikibase
// extension of the MediaWiki Action API.
package wikibase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/adapter/mediawiki"
	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// maxIDsPerRequest is the wbgetentities limit for non-bot users.
const maxIDsPerRequest = 50

// Client is the knowledge store adapter.
type Client struct {
	api         *mediawiki.Client
	searchLimit int
	log         *slog.Logger
}

// NewClient wraps api. searchLimit bounds wbsearchentities results.
func NewClient(logger *slog.Logger, api *mediawiki.Client, searchLimit int) *Client {
	if searchLimit <= 0 {
		searchLimit = 15
	}
	return &Client{
		api:         api,
		searchLimit: searchLimit,
		log:         logger.With("adapter", "wikibase"),
	}
}

// NegotiateEditToken fetches a fresh CSRF token for the knowledge store.
func (c *Client) NegotiateEditToken(ctx context.Context, authz domain.Authorization) (domain.EditSession, error) {
	return c.api.NegotiateEditToken(ctx, authz)
}

// GetLexeme fetches the current document of lexeme id. languages, when
// non-empty, restricts the returned terms.
func (c *Client) GetLexeme(ctx context.Context, id string, languages ...string) (*domain.Lexeme, error) {
	params := url.Values{
		"action": {"wbgetentities"},
		"ids":    {id},
	}
	if len(languages) > 0 {
		params.Set("languages", strings.Join(languages, "|"))
	}

	var resp getEntitiesResponse
	if err := c.api.Get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("wikibase.GetLexeme %s: %w", id, err)
	}

	raw, ok := resp.Entities[id]
	if !ok {
		return nil, fmt.Errorf("wikibase.GetLexeme %s: %w", id, domain.ErrNotFound)
	}
	lex, err := decodeLexeme(raw)
	if err != nil {
		return nil, fmt.Errorf("wikibase.GetLexeme %s: %w", id, err)
	}
	return lex, nil
}

// SearchLexemes runs a lexeme search in language. With exact set, only hits
// whose label matched search verbatim in that language are kept.
func (c *Client) SearchLexemes(ctx context.Context, search, language string, exact bool) ([]domain.LexemeHit, error) {
	params := url.Values{
		"action":   {"wbsearchentities"},
		"type":     {"lexeme"},
		"search":   {search},
		"language": {language},
		"uselang":  {language},
		"limit":    {strconv.Itoa(c.searchLimit)},
	}

	var resp searchResponse
	if err := c.api.Get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("wikibase.SearchLexemes: %w", err)
	}

	want := apiMatch{Type: "label", Language: language, Text: search}
	hits := make([]domain.LexemeHit, 0, len(resp.Search))
	for _, h := range resp.Search {
		if exact && h.Match != want {
			continue
		}
		hits = append(hits, domain.LexemeHit{
			ID:          h.ID,
			Label:       h.Label,
			Language:    language,
			Description: h.Description,
		})
	}
	return hits, nil
}

// GetLabels returns the label in language of each id that has one. Ids are
// fetched in chunks; missing entities are skipped.
func (c *Client) GetLabels(ctx context.Context, ids []string, language string) (map[string]string, error) {
	labels := make(map[string]string, len(ids))
	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := min(start+maxIDsPerRequest, len(ids))
		params := url.Values{
			"action":           {"wbgetentities"},
			"ids":              {strings.Join(ids[start:end], "|")},
			"props":            {"labels"},
			"languages":        {language},
			"languagefallback": {"1"},
		}

		var resp getEntitiesResponse
		if err := c.api.Get(ctx, params, &resp); err != nil {
			return nil, fmt.Errorf("wikibase.GetLabels: %w", err)
		}
		for id, raw := range resp.Entities {
			var e apiEntity
			if err := json.Unmarshal(raw, &e); err != nil || e.Missing != nil {
				continue
			}
			if term, ok := e.Labels[language]; ok {
				labels[id] = term.Value
			}
		}
	}
	return labels, nil
}

// EditEntity submits data and returns the entity as stored after the edit.
func (c *Client) EditEntity(ctx context.Context, session domain.EditSession, in domain.EntityEdit) (*domain.Lexeme, error) {
	data, err := json.Marshal(in.Data)
	if err != nil {
		return nil, fmt.Errorf("wikibase.EditEntity: encode data: %w", err)
	}

	params := url.Values{
		"action":  {"wbeditentity"},
		"data":    {string(data)},
		"token":   {session.CSRFToken},
		"summary": {in.Summary},
		"assert":  {"user"},
	}
	switch {
	case in.New != "" && in.ID == "":
		params.Set("new", in.New)
	case in.ID != "" && in.New == "" && in.BaseRevID > 0:
		params.Set("id", in.ID)
		params.Set("baserevid", strconv.FormatInt(in.BaseRevID, 10))
	default:
		return nil, fmt.Errorf("wikibase.EditEntity: need new or id with baserevid: %w", domain.ErrValidation)
	}

	var resp editEntityResponse
	if err := c.api.Post(ctx, session.Auth, params, &resp); err != nil {
		return nil, fmt.Errorf("wikibase.EditEntity %s: %w", in.ID, err)
	}

	lex, err := decodeLexeme(resp.Entity)
	if err != nil {
		return nil, fmt.Errorf("wikibase.EditEntity %s: %w", in.ID, err)
	}
	if lex.LastRevID == 0 {
		return nil, fmt.Errorf("wikibase.EditEntity %s: no revision in response: %w", in.ID, domain.ErrInconsistentState)
	}

	c.log.InfoContext(ctx, "entity edited",
		slog.String("entity_id", lex.ID),
		slog.Int64("revision_id", lex.LastRevID),
		slog.String("username", session.Auth.Username),
	)
	return lex, nil
}

// CreateClaim adds a statement to entityID, which may be a form or sense id.
func (c *Client) CreateClaim(ctx context.Context, session domain.EditSession, entityID string, in domain.ClaimWrite) (domain.ClaimResult, error) {
	params := claimParams("wbcreateclaim", session, in)
	params.Set("entity", entityID)

	res, err := c.postClaim(ctx, session, params)
	if err != nil {
		return domain.ClaimResult{}, fmt.Errorf("wikibase.CreateClaim %s %s: %w", entityID, in.Property, err)
	}
	c.log.InfoContext(ctx, "claim created",
		slog.String("entity_id", entityID),
		slog.String("property", in.Property),
		slog.String("claim_id", res.ClaimID),
		slog.Int64("revision_id", res.RevisionID),
	)
	return res, nil
}

// SetQualifier attaches a qualifier to claimID.
func (c *Client) SetQualifier(ctx context.Context, session domain.EditSession, claimID string, in domain.ClaimWrite) (domain.ClaimResult, error) {
	params := claimParams("wbsetqualifier", session, in)
	params.Set("claim", claimID)

	res, err := c.postClaim(ctx, session, params)
	if err != nil {
		return domain.ClaimResult{}, fmt.Errorf("wikibase.SetQualifier %s %s: %w", claimID, in.Property, err)
	}
	return res, nil
}

func (c *Client) postClaim(ctx context.Context, session domain.EditSession, params url.Values) (domain.ClaimResult, error) {
	var resp claimResponse
	if err := c.api.Post(ctx, session.Auth, params, &resp); err != nil {
		return domain.ClaimResult{}, err
	}
	if resp.PageInfo.LastRevID == 0 || resp.Claim.ID == "" {
		return domain.ClaimResult{}, fmt.Errorf("incomplete claim response: %w", domain.ErrInconsistentState)
	}
	return domain.ClaimResult{ClaimID: resp.Claim.ID, RevisionID: resp.PageInfo.LastRevID}, nil
}

func claimParams(action string, session domain.EditSession, in domain.ClaimWrite) url.Values {
	params := url.Values{
		"action":   {action},
		"property": {in.Property},
		"snaktype": {"value"},
		"value":    {in.Value.JSON()},
		"token":    {session.CSRFToken},
		"summary":  {in.Summary},
		"assert":   {"user"},
	}
	if in.BaseRevID > 0 {
		params.Set("baserevid", strconv.FormatInt(in.BaseRevID, 10))
	}
	return params
}
