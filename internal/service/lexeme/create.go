package lexeme

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/internal/observe"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

// CreateResult identifies a newly created lexeme. SenseID is set when the
// lexeme was created with an initial sense.
type CreateResult struct {
	LexemeID   string
	RevisionID int64
	SenseID    string
}

// CreateLexeme creates a lexeme with one lemma in in.Language. The language
// must be in the lookup table; that is checked before any remote call.
func (s *Service) CreateLexeme(ctx context.Context, in CreateLexemeInput) (CreateResult, error) {
	authz, ok := ctxutil.AuthorizationFromCtx(ctx)
	if !ok {
		return CreateResult{}, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return CreateResult{}, err
	}
	return s.createLexeme(ctx, authz, in)
}

func (s *Service) createLexeme(ctx context.Context, authz domain.Authorization, in CreateLexemeInput) (res CreateResult, err error) {
	ctx, span := observe.StartSpan(ctx, "lexeme.CreateLexeme")
	defer func() {
		observe.EndSpan(span, err)
		s.finish(ctx, domain.EditTypeLexemeCreate, err)
	}()

	code := strings.TrimSpace(in.Language)
	lang, err := s.languages.Lookup(code)
	if err != nil {
		return CreateResult{}, err
	}
	category, _ := normalizeItemID(in.CategoryID)
	lemma := domain.Term{Language: code, Value: strings.TrimSpace(in.Value)}

	data := map[string]any{
		"lemmas":          map[string]domain.Term{code: lemma},
		"language":        lang.QID,
		"lexicalCategory": category,
	}
	if gloss := strings.TrimSpace(in.Gloss); gloss != "" {
		glossLang := strings.TrimSpace(in.GlossLanguage)
		if glossLang == "" {
			glossLang = code
		}
		data["senses"] = []map[string]any{{
			"add":     "",
			"glosses": map[string]domain.Term{glossLang: {Language: glossLang, Value: gloss}},
		}}
	}

	session, err := s.store.NegotiateEditToken(ctx, authz)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create lexeme: %w", err)
	}

	created, err := s.store.EditEntity(ctx, session, domain.EntityEdit{
		New:     "lexeme",
		Data:    data,
		Summary: s.summary(authz.Username),
	})
	if err != nil {
		return CreateResult{}, fmt.Errorf("create lexeme: %w", err)
	}
	if created.ID == "" {
		return CreateResult{}, fmt.Errorf("create lexeme: no entity id in response: %w", domain.ErrInconsistentState)
	}

	s.record(ctx, domain.Contribution{
		WDItem:   created.ID,
		Username: authz.Username,
		LangCode: code,
		EditType: domain.EditTypeLexemeCreate,
		Data:     lemma.Value,
	}, created.LastRevID)

	res = CreateResult{LexemeID: created.ID, RevisionID: created.LastRevID}
	if _, wantSense := data["senses"]; wantSense {
		if len(created.Senses) == 0 {
			return res, fmt.Errorf("create lexeme %s: sense missing in response: %w", created.ID, domain.ErrInconsistentState)
		}
		res.SenseID = created.Senses[0].ID
	}

	s.log.InfoContext(ctx, "lexeme created",
		slog.String("lexeme_id", created.ID),
		slog.String("language", code),
		slog.String("category", category),
		slog.Int64("revision_id", created.LastRevID),
	)

	return res, nil
}
