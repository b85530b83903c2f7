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

// AudioFailure is the outcome of one batch item that did not complete.
type AudioFailure struct {
	Index  int
	FormID string
	Err    error
}

// AudioBatchResult holds the per-item outcomes of AddAudio. Results lists the
// items that completed, in input order.
type AudioBatchResult struct {
	Results  []domain.EditResult
	Failures []AudioFailure
	Total    int
}

// Err returns a *domain.PartialBatchError when any item failed.
func (r AudioBatchResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return &domain.PartialBatchError{Failed: len(r.Failures), Total: r.Total}
}

// AddAudio uploads each recording and attaches it to its form as a
// pronunciation statement qualified by language. Items run one after another
// and independently: a failed item is reported in Failures and does not stop
// or undo the others. Once ctx is done the remaining items are reported as
// not attempted.
func (s *Service) AddAudio(ctx context.Context, items []AudioItem) (AudioBatchResult, error) {
	authz, ok := ctxutil.AuthorizationFromCtx(ctx)
	if !ok {
		return AudioBatchResult{}, domain.ErrUnauthorized
	}
	switch {
	case len(items) == 0:
		return AudioBatchResult{}, domain.NewValidationError("items", "required")
	case len(items) > maxAudioBatchSize:
		return AudioBatchResult{}, domain.NewValidationError("items", fmt.Sprintf("too many (max %d)", maxAudioBatchSize))
	}

	ctx, span := observe.StartSpan(ctx, "lexeme.AddAudio")
	defer span.End()

	res := AudioBatchResult{Total: len(items)}
	for idx, item := range items {
		if err := ctx.Err(); err != nil {
			res.Failures = append(res.Failures, AudioFailure{Index: idx, FormID: item.FormID, Err: fmt.Errorf("not attempted: %w", err)})
			continue
		}
		edit, err := s.addAudioItem(ctx, authz, item)
		s.finish(ctx, domain.EditTypeAudioAdd, err)
		if err != nil {
			observe.Logger(ctx, s.log).WarnContext(ctx, "audio item failed",
				slog.Int("index", idx),
				slog.String("form_id", item.FormID),
				slog.String("error", err.Error()),
			)
			res.Failures = append(res.Failures, AudioFailure{Index: idx, FormID: item.FormID, Err: err})
			continue
		}
		res.Results = append(res.Results, edit)
	}

	if err := res.Err(); err != nil {
		span.RecordError(err)
	}
	return res, nil
}

func (s *Service) addAudioItem(ctx context.Context, authz domain.Authorization, item AudioItem) (domain.EditResult, error) {
	lexemeID, content, err := item.decode()
	if err != nil {
		return domain.EditResult{}, err
	}
	langLabel := strings.TrimSpace(item.LangLabel)

	mediaSession, err := s.media.NegotiateEditToken(ctx, authz)
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("upload %s: %w", item.Filename, err)
	}
	upload, err := s.media.Upload(ctx, mediaSession, domain.MediaUpload{
		Filename:      strings.TrimSpace(item.Filename),
		Content:       content,
		LanguageLabel: langLabel,
	})
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("upload %s: %w", item.Filename, err)
	}
	filename := upload.Filename

	lex, err := s.currentLexeme(ctx, lexemeID)
	if err != nil {
		return domain.EditResult{}, err
	}
	if _, ok := lex.FormByID(item.FormID); !ok {
		return domain.EditResult{}, fmt.Errorf("form %s: %w", item.FormID, domain.ErrNotFound)
	}

	summary := s.summary(authz.Username)

	session, err := s.store.NegotiateEditToken(ctx, authz)
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("audio claim: %w", err)
	}
	claim, err := s.store.CreateClaim(ctx, session, item.FormID, domain.ClaimWrite{
		Property:  s.cfg.AudioProperty,
		Value:     domain.StringSnak(filename),
		BaseRevID: lex.LastRevID,
		Summary:   summary,
	})
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("audio claim: %w", err)
	}

	session, err = s.store.NegotiateEditToken(ctx, authz)
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("audio qualifier: %w", err)
	}
	qualified, err := s.store.SetQualifier(ctx, session, claim.ClaimID, domain.ClaimWrite{
		Property:  s.cfg.LangProperty,
		Value:     domain.EntitySnak("item", item.LangQID),
		BaseRevID: claim.RevisionID,
		Summary:   summary,
	})
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("audio qualifier on %s: %w", claim.ClaimID, err)
	}

	s.record(ctx, domain.Contribution{
		WDItem:   lexemeID,
		Username: authz.Username,
		LangCode: langLabel,
		EditType: domain.EditTypeAudioAdd,
		Data:     filename,
	}, qualified.RevisionID)

	s.log.DebugContext(ctx, "audio attached",
		slog.String("form_id", item.FormID),
		slog.String("filename", filename),
		slog.Bool("duplicate", upload.Duplicate),
		slog.Int64("revision_id", qualified.RevisionID),
	)

	return domain.EditResult{LexemeID: lexemeID, RevisionID: qualified.RevisionID}, nil
}
