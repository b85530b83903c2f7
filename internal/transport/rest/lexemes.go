package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/internal/service/lexeme"
)

type lexemeService interface {
	SearchLexemes(ctx context.Context, in lexeme.SearchInput) ([]domain.LexemeHit, error)
	CreateLexeme(ctx context.Context, in lexeme.CreateLexemeInput) (lexeme.CreateResult, error)
	GetLexemeGlosses(ctx context.Context, q lexeme.GlossesQuery) (*lexeme.GlossesView, error)
	AddGloss(ctx context.Context, in lexeme.AddGlossInput) (domain.EditResult, error)
	AddTranslation(ctx context.Context, in lexeme.AddTranslationInput) (lexeme.TranslationResult, error)
	AddAudio(ctx context.Context, items []lexeme.AudioItem) (lexeme.AudioBatchResult, error)
	FormsMissingAudio(ctx context.Context, lexemeID, language string) ([]lexeme.FormView, error)
	FileURLs(ctx context.Context, titles []string) ([]domain.MediaFile, error)
}

// LexemeHandler serves lexeme reads and the edit orchestrations.
type LexemeHandler struct {
	svc          lexemeService
	log          *slog.Logger
	maxBodyBytes int64
	batchTimeout time.Duration
}

// NewLexemeHandler creates a LexemeHandler. maxBodyBytes bounds request
// bodies, which for audio batches carry base64 recordings. batchTimeout
// replaces the server read and write deadlines for audio batches; zero keeps
// the server's.
func NewLexemeHandler(svc lexemeService, logger *slog.Logger, maxBodyBytes int64, batchTimeout time.Duration) *LexemeHandler {
	return &LexemeHandler{
		svc:          svc,
		log:          logger.With("handler", "lexeme"),
		maxBodyBytes: maxBodyBytes,
		batchTimeout: batchTimeout,
	}
}

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type searchRequest struct {
	Search  string `json:"search"`
	SrcLang string `json:"src_lang"`
	IsMatch int    `json:"ismatch"`
}

type lexemeHitResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

type createRequest struct {
	Language      string `json:"language"`
	Value         string `json:"value"`
	CategoryID    string `json:"categoryId"`
	GlossLanguage string `json:"gloss_language"`
	Gloss         string `json:"gloss"`
}

type createResponse struct {
	LexemeID   string `json:"lexeme_id"`
	RevisionID int64  `json:"revision_id"`
	SenseID    string `json:"sense_id,omitempty"`
}

type editResponse struct {
	LexemeID   string `json:"lexeme_id"`
	RevisionID int64  `json:"revision_id"`
}

type glossRequest struct {
	LexemeID string `json:"lexeme_id"`
	SenseID  string `json:"sense_id"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

type translationRequest struct {
	BaseLexeme          string `json:"base_lexeme"`
	TranslationLanguage string `json:"translation_language"`
	TranslationSenseID  string `json:"translation_sense_id"`
	IsNew               bool   `json:"is_new"`
	Value               string `json:"value"`
	CategoryID          string `json:"categoryId"`
	GlossLanguage       string `json:"gloss_language"`
	Gloss               string `json:"gloss"`
}

type translationResponse struct {
	Results       []editResponse `json:"results"`
	TargetSenseID string         `json:"target_sense_id,omitempty"`
}

type orphanResponse struct {
	Message        string `json:"message"`
	OrphanLexemeID string `json:"orphan_lexeme_id"`
	RevisionID     int64  `json:"revision_id"`
}

type audioRequestItem struct {
	LangQID     string `json:"lang_qid"`
	LangLabel   string `json:"lang_label"`
	FileContent string `json:"file_content"`
	FormID      string `json:"form_id"`
	Filename    string `json:"filename"`
}

type audioFailureResponse struct {
	Index   int    `json:"index"`
	FormID  string `json:"form_id"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type audioResponse struct {
	Results []editResponse         `json:"results"`
	Errors  []audioFailureResponse `json:"errors,omitempty"`
	Total   int                    `json:"total"`
}

type glossesResponse struct {
	Lexeme struct {
		ID                   string `json:"id"`
		LexicalCategoryID    string `json:"lexicalCategoryId"`
		LexicalCategoryLabel string `json:"lexicalCategoryLabel"`
		LanguageLabel        string `json:"languageLabel"`
		Image                string `json:"image,omitempty"`
	} `json:"lexeme"`
	Glosses []glossResponse `json:"gloss"`
}

type glossResponse struct {
	SenseID  string `json:"senseId"`
	Language string `json:"language"`
	Value    string `json:"value"`
	FormID   string `json:"formId,omitempty"`
	Audio    string `json:"audio,omitempty"`
}

type formResponse struct {
	FormID         string `json:"form_id"`
	Representation string `json:"representation"`
}

func toEditResponses(results []domain.EditResult) []editResponse {
	out := make([]editResponse, len(results))
	for i, r := range results {
		out[i] = editResponse{LexemeID: r.LexemeID, RevisionID: r.RevisionID}
	}
	return out
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// Search handles POST /lexemes/.
func (h *LexemeHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, 16<<10, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	hits, err := h.svc.SearchLexemes(r.Context(), lexeme.SearchInput{
		Search:   req.Search,
		Language: req.SrcLang,
		Exact:    req.IsMatch == 1,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]lexemeHitResponse, len(hits))
	for i, hit := range hits {
		out[i] = lexemeHitResponse{ID: hit.ID, Label: hit.Label, Language: hit.Language, Description: hit.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

// Glosses handles GET /lexemes/{id}.
func (h *LexemeHandler) Glosses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.svc.GetLexemeGlosses(r.Context(), lexeme.GlossesQuery{
		LexemeID: r.PathValue("id"),
		SrcLang:  q.Get("src_lang"),
		Lang1:    q.Get("lang_1"),
		Lang2:    q.Get("lang_2"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var resp glossesResponse
	resp.Lexeme.ID = view.LexemeID
	resp.Lexeme.LexicalCategoryID = view.LexicalCategoryID
	resp.Lexeme.LexicalCategoryLabel = view.LexicalCategoryLabel
	resp.Lexeme.LanguageLabel = view.LanguageLabel
	resp.Lexeme.Image = view.Image
	resp.Glosses = make([]glossResponse, len(view.Glosses))
	for i, g := range view.Glosses {
		resp.Glosses[i] = glossResponse{SenseID: g.SenseID, Language: g.Language, Value: g.Value, FormID: g.FormID, Audio: g.Audio}
	}
	writeJSON(w, http.StatusOK, resp)
}

// MissingAudio handles GET /lexemes/{id}/forms/missing-audio.
func (h *LexemeHandler) MissingAudio(w http.ResponseWriter, r *http.Request) {
	forms, err := h.svc.FormsMissingAudio(r.Context(), r.PathValue("id"), r.URL.Query().Get("lang"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]formResponse, len(forms))
	for i, f := range forms {
		out[i] = formResponse{FormID: f.FormID, Representation: f.Representation}
	}
	writeJSON(w, http.StatusOK, out)
}

// FileURLs handles GET /file/url/{titles}; titles are separated by "|".
func (h *LexemeHandler) FileURLs(w http.ResponseWriter, r *http.Request) {
	var titles []string
	for _, t := range strings.Split(r.PathValue("titles"), "|") {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		handleError(h.log, w, r, domain.NewValidationError("titles", "required"))
		return
	}

	files, err := h.svc.FileURLs(r.Context(), titles)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create handles POST /lexemes/create.
func (h *LexemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(w, r, 16<<10, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.CreateLexeme(r.Context(), lexeme.CreateLexemeInput{
		Language:      req.Language,
		Value:         req.Value,
		CategoryID:    req.CategoryID,
		GlossLanguage: req.GlossLanguage,
		Gloss:         req.Gloss,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, createResponse{LexemeID: res.LexemeID, RevisionID: res.RevisionID, SenseID: res.SenseID})
}

// AddGloss handles POST /lexemes/glosses/add.
func (h *LexemeHandler) AddGloss(w http.ResponseWriter, r *http.Request) {
	var req glossRequest
	if err := decodeJSON(w, r, 16<<10, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.AddGloss(r.Context(), lexeme.AddGlossInput{
		LexemeID: req.LexemeID,
		SenseID:  req.SenseID,
		Language: req.Language,
		Value:    req.Value,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, editResponse{LexemeID: res.LexemeID, RevisionID: res.RevisionID})
}

// AddTranslation handles POST /lexemes/translations/add.
func (h *LexemeHandler) AddTranslation(w http.ResponseWriter, r *http.Request) {
	var req translationRequest
	if err := decodeJSON(w, r, 16<<10, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.AddTranslation(r.Context(), lexeme.AddTranslationInput{
		BaseLexeme:          req.BaseLexeme,
		TranslationLanguage: req.TranslationLanguage,
		TranslationSenseID:  req.TranslationSenseID,
		IsNew:               req.IsNew,
		Value:               req.Value,
		CategoryID:          req.CategoryID,
		GlossLanguage:       req.GlossLanguage,
		Gloss:               req.Gloss,
	})
	var orphan *domain.OrphanError
	if errors.As(err, &orphan) {
		h.log.ErrorContext(r.Context(), "translation target left unlinked",
			slog.String("lexeme_id", orphan.LexemeID),
			slog.String("error", orphan.Err.Error()))
		writeJSON(w, http.StatusMultiStatus, orphanResponse{
			Message:        orphan.Error(),
			OrphanLexemeID: orphan.LexemeID,
			RevisionID:     orphan.RevisionID,
		})
		return
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, translationResponse{Results: toEditResponses(res.Results), TargetSenseID: res.TargetSenseID})
}

// AddAudio handles POST /lexeme/audio/add. The body is a JSON array of
// items. Every item is attempted; the status is 200 when all succeed, 207
// when some do, and the first failure's status when none do.
//
// The batch runs under its own deadline. Items still pending shortly before
// it are reported as not attempted so the response is written in time.
func (h *LexemeHandler) AddAudio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.batchTimeout > 0 {
		deadline := time.Now().Add(h.batchTimeout)
		h.extendDeadlines(ctx, w, deadline)

		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline.Add(-h.batchTimeout/20))
		defer cancel()
	}

	var req []audioRequestItem
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]lexeme.AudioItem, len(req))
	for i, it := range req {
		items[i] = lexeme.AudioItem{
			LangQID:           it.LangQID,
			LangLabel:         it.LangLabel,
			FileContentBase64: it.FileContent,
			FormID:            it.FormID,
			Filename:          it.Filename,
		}
	}

	res, err := h.svc.AddAudio(ctx, items)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := audioResponse{Results: toEditResponses(res.Results), Total: res.Total}
	for _, f := range res.Failures {
		status := statusFor(f.Err)
		resp.Errors = append(resp.Errors, audioFailureResponse{
			Index:   f.Index,
			FormID:  f.FormID,
			Status:  status,
			Message: errorBody(f.Err, status).Message,
		})
	}

	status := http.StatusOK
	switch {
	case len(resp.Errors) > 0 && len(resp.Results) > 0:
		status = http.StatusMultiStatus
	case len(resp.Errors) > 0:
		status = resp.Errors[0].Status
	}
	writeJSON(w, status, resp)
}

func (h *LexemeHandler) extendDeadlines(ctx context.Context, w http.ResponseWriter, deadline time.Time) {
	rc := http.NewResponseController(w)
	if err := rc.SetReadDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.WarnContext(ctx, "extend read deadline", slog.String("error", err.Error()))
	}
	if err := rc.SetWriteDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.WarnContext(ctx, "extend write deadline", slog.String("error", err.Error()))
	}
}
