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

// TranslationResult lists the writes of AddTranslation in order: the created
// target lexeme first when IsNew was set, then the link on the base entity.
type TranslationResult struct {
	Results       []domain.EditResult
	TargetSenseID string
}

// AddTranslation links in.BaseLexeme to a sense in another language through
// the translation property. With in.IsNew the target lexeme is created first;
// if that fails nothing is linked. If the link fails after a successful
// creation, the error is a *domain.OrphanError naming the unlinked lexeme.
//
// For an existing target, in.TranslationSenseID is written as given. Its
// existence is not checked.
func (s *Service) AddTranslation(ctx context.Context, in AddTranslationInput) (res TranslationResult, err error) {
	authz, ok := ctxutil.AuthorizationFromCtx(ctx)
	if !ok {
		return TranslationResult{}, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return TranslationResult{}, err
	}

	ctx, span := observe.StartSpan(ctx, "lexeme.AddTranslation")
	defer func() {
		observe.EndSpan(span, err)
		s.finish(ctx, domain.EditTypeTranslationAdd, err)
	}()

	baseID, _ := domain.ResolveLexemeID(in.BaseLexeme)
	language := strings.TrimSpace(in.TranslationLanguage)
	targetSense := in.TranslationSenseID

	var created *CreateResult
	if in.IsNew {
		c, err := s.createLexeme(ctx, authz, CreateLexemeInput{
			Language:      language,
			Value:         in.Value,
			CategoryID:    in.CategoryID,
			GlossLanguage: in.GlossLanguage,
			Gloss:         in.Gloss,
		})
		if err != nil {
			if c.LexemeID != "" {
				return TranslationResult{}, &domain.OrphanError{LexemeID: c.LexemeID, RevisionID: c.RevisionID, Err: err}
			}
			return TranslationResult{}, fmt.Errorf("create translation target: %w", err)
		}
		created = &c
		targetSense = c.SenseID
		res.Results = append(res.Results, domain.EditResult{LexemeID: c.LexemeID, RevisionID: c.RevisionID})
	}
	res.TargetSenseID = targetSense

	link, err := s.linkTranslation(ctx, authz, in.BaseLexeme, baseID, targetSense)
	if err != nil {
		if created != nil {
			return TranslationResult{}, &domain.OrphanError{LexemeID: created.LexemeID, RevisionID: created.RevisionID, Err: err}
		}
		return TranslationResult{}, err
	}
	res.Results = append(res.Results, domain.EditResult{LexemeID: baseID, RevisionID: link.RevisionID})

	s.record(ctx, domain.Contribution{
		WDItem:   in.BaseLexeme,
		Username: authz.Username,
		LangCode: language,
		EditType: domain.EditTypeTranslationAdd,
		Data:     targetSense,
	}, link.RevisionID)

	s.log.InfoContext(ctx, "translation linked",
		slog.String("base", in.BaseLexeme),
		slog.String("target_sense", targetSense),
		slog.Bool("created", created != nil),
		slog.Int64("revision_id", link.RevisionID),
	)

	return res, nil
}

// linkTranslation writes the translation statement on entityID, basing the
// write on the current revision of lexemeID.
func (s *Service) linkTranslation(ctx context.Context, authz domain.Authorization, entityID, lexemeID, targetSense string) (domain.ClaimResult, error) {
	if targetSense == "" {
		return domain.ClaimResult{}, fmt.Errorf("link translation: no target sense: %w", domain.ErrInconsistentState)
	}

	lex, err := s.currentLexeme(ctx, lexemeID)
	if err != nil {
		return domain.ClaimResult{}, fmt.Errorf("link translation: %w", err)
	}

	session, err := s.store.NegotiateEditToken(ctx, authz)
	if err != nil {
		return domain.ClaimResult{}, fmt.Errorf("link translation: %w", err)
	}

	claim, err := s.store.CreateClaim(ctx, session, entityID, domain.ClaimWrite{
		Property:  s.cfg.TransProperty,
		Value:     domain.EntitySnak("sense", targetSense),
		BaseRevID: lex.LastRevID,
		Summary:   s.summary(authz.Username),
	})
	if err != nil {
		return domain.ClaimResult{}, fmt.Errorf("link translation: %w", err)
	}
	return claim, nil
}
