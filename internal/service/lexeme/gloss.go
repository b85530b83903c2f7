package lexeme

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/internal/observe"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

// AddGloss sets the gloss of in.SenseID in in.Language to in.Value. The whole
// senses array is resubmitted against the revision that was just read, so a
// concurrent edit surfaces as domain.ErrConflict.
func (s *Service) AddGloss(ctx context.Context, in AddGlossInput) (res domain.EditResult, err error) {
	authz, ok := ctxutil.AuthorizationFromCtx(ctx)
	if !ok {
		return domain.EditResult{}, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return domain.EditResult{}, err
	}

	ctx, span := observe.StartSpan(ctx, "lexeme.AddGloss")
	defer func() {
		observe.EndSpan(span, err)
		s.finish(ctx, domain.EditTypeGlossAdd, err)
	}()

	gloss := domain.Term{Language: strings.TrimSpace(in.Language), Value: strings.TrimSpace(in.Value)}

	lex, err := s.currentLexeme(ctx, in.LexemeID)
	if err != nil {
		return domain.EditResult{}, err
	}
	if _, ok := lex.SenseByID(in.SenseID); !ok {
		return domain.EditResult{}, fmt.Errorf("sense %s: %w", in.SenseID, domain.ErrNotFound)
	}

	session, err := s.store.NegotiateEditToken(ctx, authz)
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("add gloss: %w", err)
	}

	edited, err := s.store.EditEntity(ctx, session, domain.EntityEdit{
		ID:        lex.ID,
		BaseRevID: lex.LastRevID,
		Data:      map[string]any{"senses": sensesWithGloss(lex.Senses, in.SenseID, gloss)},
		Summary:   s.summary(authz.Username),
	})
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("add gloss: %w", err)
	}

	s.record(ctx, domain.Contribution{
		WDItem:   in.SenseID,
		Username: authz.Username,
		LangCode: gloss.Language,
		EditType: domain.EditTypeGlossAdd,
		Data:     gloss.Value,
	}, edited.LastRevID)

	s.log.DebugContext(ctx, "gloss added",
		slog.String("sense_id", in.SenseID),
		slog.String("language", gloss.Language),
		slog.Int64("base_revision_id", lex.LastRevID),
		slog.Int64("revision_id", edited.LastRevID),
	)

	return domain.EditResult{LexemeID: lex.ID, RevisionID: edited.LastRevID}, nil
}

// currentLexeme fetches id with all its terms and checks it carries a
// revision to base the next write on.
func (s *Service) currentLexeme(ctx context.Context, id string) (*domain.Lexeme, error) {
	lex, err := s.store.GetLexeme(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lexeme %s: %w", id, err)
	}
	if lex.LastRevID <= 0 {
		return nil, fmt.Errorf("lexeme %s has no revision: %w", id, domain.ErrInconsistentState)
	}
	return lex, nil
}

// sensesWithGloss rebuilds the full senses array with gloss set on targetID.
// Every other sense is passed through as read.
func sensesWithGloss(senses []domain.Sense, targetID string, gloss domain.Term) []map[string]any {
	out := make([]map[string]any, 0, len(senses))
	for _, sense := range senses {
		raw := maps.Clone(sense.Raw)
		if raw == nil {
			raw = map[string]any{"id": sense.ID, "glosses": sense.Glosses}
		}
		if sense.ID == targetID {
			glosses := maps.Clone(sense.Glosses)
			if glosses == nil {
				glosses = make(map[string]domain.Term, 1)
			}
			glosses[gloss.Language] = gloss
			raw["glosses"] = glosses
		}
		out = append(out, raw)
	}
	return out
}
