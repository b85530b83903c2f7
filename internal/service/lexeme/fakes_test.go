package lexeme

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// fakeStore: in-memory knowledge store that enforces baserevid
// ---------------------------------------------------------------------------

type claimCall struct {
	target string
	in     domain.ClaimWrite
}

type fakeStore struct {
	lexemes    map[string]*domain.Lexeme
	nextLexeme int
	nextClaim  int

	calls      []string
	edits      []domain.EntityEdit
	claims     []claimCall
	qualifiers []claimCall
	labelCalls [][]string

	labels map[string]string

	getErr       error
	tokenErr     error
	editErr      error
	claimErr     error
	qualifierErr error
	labelsErr    error

	// afterGet runs after every successful GetLexeme, e.g. to simulate a
	// concurrent writer.
	afterGet func(lex *domain.Lexeme)
}

func newFakeStore(lexemes ...*domain.Lexeme) *fakeStore {
	f := &fakeStore{lexemes: make(map[string]*domain.Lexeme), nextLexeme: 1000}
	for _, l := range lexemes {
		f.lexemes[l.ID] = l
	}
	return f
}

func (f *fakeStore) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeStore) NegotiateEditToken(_ context.Context, authz domain.Authorization) (domain.EditSession, error) {
	f.calls = append(f.calls, "token")
	if f.tokenErr != nil {
		return domain.EditSession{}, f.tokenErr
	}
	return domain.EditSession{CSRFToken: fmt.Sprintf("tok-%d+\\", len(f.calls)), Auth: authz}, nil
}

func (f *fakeStore) GetLexeme(_ context.Context, id string, _ ...string) (*domain.Lexeme, error) {
	f.calls = append(f.calls, "get:"+id)
	if f.getErr != nil {
		return nil, f.getErr
	}
	lex, ok := f.lexemes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := cloneLexeme(lex)
	if f.afterGet != nil {
		f.afterGet(lex)
	}
	return cp, nil
}

func (f *fakeStore) SearchLexemes(_ context.Context, search, language string, exact bool) ([]domain.LexemeHit, error) {
	f.calls = append(f.calls, "search:"+search)
	var hits []domain.LexemeHit
	for _, l := range f.lexemes {
		if lemma, ok := l.Lemmas[language]; ok && (!exact || lemma.Value == search) {
			hits = append(hits, domain.LexemeHit{ID: l.ID, Label: lemma.Value, Language: language})
		}
	}
	return hits, nil
}

func (f *fakeStore) GetLabels(_ context.Context, ids []string, _ string) (map[string]string, error) {
	f.calls = append(f.calls, "labels")
	f.labelCalls = append(f.labelCalls, append([]string(nil), ids...))
	if f.labelsErr != nil {
		return nil, f.labelsErr
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if l, ok := f.labels[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

func (f *fakeStore) EditEntity(_ context.Context, session domain.EditSession, in domain.EntityEdit) (*domain.Lexeme, error) {
	f.calls = append(f.calls, "edit")
	f.edits = append(f.edits, in)
	if session.CSRFToken == "" {
		return nil, &domain.APIError{Code: "notoken", Kind: domain.ErrPermissionDenied}
	}
	if f.editErr != nil {
		return nil, f.editErr
	}

	if in.New != "" {
		f.nextLexeme++
		id := fmt.Sprintf("L%d", f.nextLexeme)
		lex := &domain.Lexeme{ID: id, LastRevID: 1}
		if lemmas, ok := in.Data["lemmas"].(map[string]domain.Term); ok {
			lex.Lemmas = maps.Clone(lemmas)
		}
		lex.Language, _ = in.Data["language"].(string)
		lex.LexicalCategory, _ = in.Data["lexicalCategory"].(string)
		if senses, ok := in.Data["senses"].([]map[string]any); ok {
			for i, raw := range senses {
				glosses, _ := raw["glosses"].(map[string]domain.Term)
				lex.Senses = append(lex.Senses, domain.Sense{ID: fmt.Sprintf("%s-S%d", id, i+1), Glosses: glosses})
			}
		}
		f.lexemes[id] = lex
		return cloneLexeme(lex), nil
	}

	lex, ok := f.lexemes[in.ID]
	if !ok {
		return nil, &domain.APIError{Code: "no-such-entity", Kind: domain.ErrNotFound}
	}
	if in.BaseRevID != lex.LastRevID {
		return nil, &domain.APIError{Code: "editconflict", Kind: domain.ErrConflict}
	}
	if senses, ok := in.Data["senses"].([]map[string]any); ok {
		lex.Senses = lex.Senses[:0]
		for _, raw := range senses {
			id, _ := raw["id"].(string)
			sense := domain.Sense{ID: id, Raw: raw}
			switch g := raw["glosses"].(type) {
			case map[string]domain.Term:
				sense.Glosses = maps.Clone(g)
			}
			lex.Senses = append(lex.Senses, sense)
		}
	}
	lex.LastRevID++
	return cloneLexeme(lex), nil
}

func (f *fakeStore) CreateClaim(_ context.Context, _ domain.EditSession, entityID string, in domain.ClaimWrite) (domain.ClaimResult, error) {
	f.calls = append(f.calls, "claim:"+entityID)
	f.claims = append(f.claims, claimCall{target: entityID, in: in})
	if f.claimErr != nil {
		return domain.ClaimResult{}, f.claimErr
	}
	owner, err := domain.ResolveLexemeID(entityID)
	if err != nil {
		return domain.ClaimResult{}, err
	}
	lex, ok := f.lexemes[owner]
	if !ok {
		return domain.ClaimResult{}, &domain.APIError{Code: "no-such-entity", Kind: domain.ErrNotFound}
	}
	if in.BaseRevID != lex.LastRevID {
		return domain.ClaimResult{}, &domain.APIError{Code: "editconflict", Kind: domain.ErrConflict}
	}
	f.nextClaim++
	claimID := fmt.Sprintf("%s$%d", entityID, f.nextClaim)
	stmt := domain.Statement{ID: claimID, Property: in.Property, Value: in.Value.Text}
	if form, ok := lex.FormByID(entityID); ok {
		if form.Claims == nil {
			form.Claims = make(map[string][]domain.Statement)
		}
		form.Claims[in.Property] = append(form.Claims[in.Property], stmt)
	}
	lex.LastRevID++
	return domain.ClaimResult{ClaimID: claimID, RevisionID: lex.LastRevID}, nil
}

func (f *fakeStore) SetQualifier(_ context.Context, _ domain.EditSession, claimID string, in domain.ClaimWrite) (domain.ClaimResult, error) {
	f.calls = append(f.calls, "qualifier:"+claimID)
	f.qualifiers = append(f.qualifiers, claimCall{target: claimID, in: in})
	if f.qualifierErr != nil {
		return domain.ClaimResult{}, f.qualifierErr
	}
	owner, _, _ := strings.Cut(claimID, domain.EntityIDSeparator)
	lex := f.lexemes[owner]
	if in.BaseRevID != lex.LastRevID {
		return domain.ClaimResult{}, &domain.APIError{Code: "editconflict", Kind: domain.ErrConflict}
	}
	lex.LastRevID++
	return domain.ClaimResult{ClaimID: claimID, RevisionID: lex.LastRevID}, nil
}

func cloneLexeme(l *domain.Lexeme) *domain.Lexeme {
	cp := *l
	cp.Lemmas = maps.Clone(l.Lemmas)
	cp.Senses = make([]domain.Sense, len(l.Senses))
	for i, s := range l.Senses {
		s.Glosses = maps.Clone(s.Glosses)
		s.Raw = maps.Clone(s.Raw)
		cp.Senses[i] = s
	}
	cp.Forms = make([]domain.Form, len(l.Forms))
	for i, fm := range l.Forms {
		fm.Claims = maps.Clone(fm.Claims)
		cp.Forms[i] = fm
	}
	return &cp
}

// ---------------------------------------------------------------------------
// fakeMedia
// ---------------------------------------------------------------------------

type fakeMedia struct {
	calls   []string
	uploads []domain.MediaUpload

	tokenErr error
	// uploadFunc overrides the default success result when set.
	uploadFunc func(in domain.MediaUpload) (domain.UploadResult, error)
}

func (m *fakeMedia) NegotiateEditToken(_ context.Context, authz domain.Authorization) (domain.EditSession, error) {
	m.calls = append(m.calls, "token")
	if m.tokenErr != nil {
		return domain.EditSession{}, m.tokenErr
	}
	return domain.EditSession{CSRFToken: "media+\\", Auth: authz}, nil
}

func (m *fakeMedia) Upload(_ context.Context, _ domain.EditSession, in domain.MediaUpload) (domain.UploadResult, error) {
	m.calls = append(m.calls, "upload:"+in.Filename)
	m.uploads = append(m.uploads, in)
	if m.uploadFunc != nil {
		return m.uploadFunc(in)
	}
	return domain.UploadResult{Filename: in.Filename}, nil
}

func (m *fakeMedia) FileURLs(_ context.Context, titles []string) ([]domain.MediaFile, error) {
	files := make([]domain.MediaFile, 0, len(titles))
	for _, t := range titles {
		files = append(files, domain.MediaFile{Title: t, URL: m.FilePathURL(t)})
	}
	return files, nil
}

func (m *fakeMedia) FilePathURL(name string) string {
	return "https://media.test/" + strings.ReplaceAll(name, " ", "_")
}

// ---------------------------------------------------------------------------
// fakeLanguages, fakeLedger, fakeTx
// ---------------------------------------------------------------------------

type fakeLanguages map[string]domain.Language

func (l fakeLanguages) Lookup(code string) (domain.Language, error) {
	lang, ok := l[code]
	if !ok {
		return domain.Language{}, fmt.Errorf("language %q: %w", code, domain.ErrUnsupportedLanguage)
	}
	return lang, nil
}

type fakeLedger struct {
	rows []domain.Contribution
	err  error
}

func (l *fakeLedger) Create(_ context.Context, c domain.Contribution) (domain.Contribution, error) {
	if l.err != nil {
		return domain.Contribution{}, l.err
	}
	c.ID = int64(len(l.rows) + 1)
	l.rows = append(l.rows, c)
	return c, nil
}

type fakeTx struct{ runs int }

func (t *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.runs++
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type testEnv struct {
	svc    *Service
	store  *fakeStore
	media  *fakeMedia
	ledger *fakeLedger
	tx     *fakeTx
}

var testAuthz = domain.Authorization{Username: "Alice", AccessToken: "key", AccessSecret: "secret"}

func newTestEnv(lexemes ...*domain.Lexeme) *testEnv {
	env := &testEnv{
		store:  newFakeStore(lexemes...),
		media:  &fakeMedia{},
		ledger: &fakeLedger{},
		tx:     &fakeTx{},
	}
	langs := fakeLanguages{
		"de": {Code: "de", Label: "German", QID: "Q188"},
		"fr": {Code: "fr", Label: "French", QID: "Q150"},
	}
	cfg := Config{
		AudioProperty: "P443",
		LangProperty:  "P407",
		TransProperty: "P5972",
		ImageProperty: "P18",
		SummaryTag:    "AGPB",
		AppVersion:    "v2.0",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.svc = NewService(logger, cfg, env.store, env.media, langs, env.ledger, env.tx, nil)
	return env
}

func authCtx() context.Context {
	return ctxutil.WithAuthorization(context.Background(), testAuthz)
}
