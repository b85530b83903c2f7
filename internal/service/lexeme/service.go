// Package lexeme orchestrates edits of lexemes on the remote knowledge store:
// gloss edits, lexeme creation, audio attachment and translation linking.
package lexeme

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/internal/observe"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type knowledgeStore interface {
	NegotiateEditToken(ctx context.Context, authz domain.Authorization) (domain.EditSession, error)
	GetLexeme(ctx context.Context, id string, languages ...string) (*domain.Lexeme, error)
	SearchLexemes(ctx context.Context, search, language string, exact bool) ([]domain.LexemeHit, error)
	GetLabels(ctx context.Context, ids []string, language string) (map[string]string, error)
	EditEntity(ctx context.Context, session domain.EditSession, in domain.EntityEdit) (*domain.Lexeme, error)
	CreateClaim(ctx context.Context, session domain.EditSession, entityID string, in domain.ClaimWrite) (domain.ClaimResult, error)
	SetQualifier(ctx context.Context, session domain.EditSession, claimID string, in domain.ClaimWrite) (domain.ClaimResult, error)
}

type mediaStore interface {
	NegotiateEditToken(ctx context.Context, authz domain.Authorization) (domain.EditSession, error)
	Upload(ctx context.Context, session domain.EditSession, in domain.MediaUpload) (domain.UploadResult, error)
	FileURLs(ctx context.Context, titles []string) ([]domain.MediaFile, error)
	FilePathURL(name string) string
}

type languageTable interface {
	Lookup(code string) (domain.Language, error)
}

type contributionRepo interface {
	Create(ctx context.Context, c domain.Contribution) (domain.Contribution, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config holds the remote property ids and the edit summary parts.
type Config struct {
	AudioProperty string
	LangProperty  string
	TransProperty string
	ImageProperty string
	SummaryTag    string
	AppVersion    string
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the lexeme editing engine.
type Service struct {
	log       *slog.Logger
	cfg       Config
	store     knowledgeStore
	media     mediaStore
	languages languageTable
	ledger    contributionRepo
	tx        txManager
	metrics   *observe.Metrics
}

// NewService creates a new lexeme service. metrics may be nil.
func NewService(
	logger *slog.Logger,
	cfg Config,
	store knowledgeStore,
	media mediaStore,
	languages languageTable,
	ledger contributionRepo,
	tx txManager,
	metrics *observe.Metrics,
) *Service {
	return &Service{
		log:       logger.With("service", "lexeme"),
		cfg:       cfg,
		store:     store,
		media:     media,
		languages: languages,
		ledger:    ledger,
		tx:        tx,
		metrics:   metrics,
	}
}

// ---------------------------------------------------------------------------
// Helpers (private)
// ---------------------------------------------------------------------------

// summary is the edit comment attached to every remote write.
func (s *Service) summary(username string) string {
	return username + "@" + s.cfg.SummaryTag + "-" + s.cfg.AppVersion
}

// record appends one ledger row for a remote write that already succeeded.
// Failures are logged and counted but never returned: the remote edit stands.
func (s *Service) record(ctx context.Context, c domain.Contribution, revisionID int64) {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.ledger.Create(txCtx, c)
		return err
	})
	if err == nil {
		return
	}

	observe.Logger(ctx, s.log).WarnContext(ctx, "contribution not recorded",
		slog.String("wd_item", c.WDItem),
		slog.Int64("revision_id", revisionID),
		slog.String("edit_type", c.EditType.String()),
		slog.String("username", c.Username),
		slog.String("error", err.Error()),
	)
	s.metrics.RecordLedgerFailure(ctx, c.EditType.String())
}

func (s *Service) finish(ctx context.Context, editType domain.EditType, err error) {
	s.metrics.RecordEdit(ctx, editType.String(), observe.Outcome(err))
}
