package lexeme

import (
	"context"
	"errors"
	"testing"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

func glossLexeme() *domain.Lexeme {
	return &domain.Lexeme{
		ID:        "L100",
		Lemmas:    map[string]domain.Term{"de": {Language: "de", Value: "Mutter"}},
		LastRevID: 42,
		Senses: []domain.Sense{
			{ID: "L100-S1", Glosses: map[string]domain.Term{"en": {Language: "en", Value: "mother"}}},
			{
				ID:      "L100-S2",
				Glosses: map[string]domain.Term{"en": {Language: "en", Value: "nut"}},
				Raw: map[string]any{
					"id":      "L100-S2",
					"glosses": map[string]domain.Term{"en": {Language: "en", Value: "nut"}},
					"claims":  map[string]any{"P5137": []any{"kept"}},
				},
			},
		},
	}
}

func TestAddGloss_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())

	res, err := env.svc.AddGloss(authCtx(), AddGlossInput{
		LexemeID: "L100", SenseID: "L100-S1", Language: "fr", Value: "mère",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LexemeID != "L100" || res.RevisionID != 43 {
		t.Errorf("result = %+v, want L100 rev 43", res)
	}

	wantCalls := []string{"get:L100", "token", "edit"}
	if len(env.store.calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", env.store.calls, wantCalls)
	}
	for i, c := range wantCalls {
		if env.store.calls[i] != c {
			t.Errorf("call[%d] = %q, want %q", i, env.store.calls[i], c)
		}
	}
	if got := env.store.edits[0].BaseRevID; got != 42 {
		t.Errorf("baserevid = %d, want 42", got)
	}
	if got := env.store.edits[0].Summary; got != "Alice@AGPB-v2.0" {
		t.Errorf("summary = %q", got)
	}

	stored, _ := env.store.lexemes["L100"].SenseByID("L100-S1")
	if got := stored.Glosses["fr"].Value; got != "mère" {
		t.Errorf("fr gloss = %q, want mère", got)
	}
	if got := stored.Glosses["en"].Value; got != "mother" {
		t.Errorf("existing en gloss lost: %q", got)
	}

	if len(env.ledger.rows) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(env.ledger.rows))
	}
	row := env.ledger.rows[0]
	if row.EditType != domain.EditTypeGlossAdd || row.LangCode != "fr" || row.Username != "Alice" || row.Data != "mère" {
		t.Errorf("unexpected ledger row: %+v", row)
	}
}

func TestAddGloss_ResubmitsWholeSensesArray(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())

	if _, err := env.svc.AddGloss(authCtx(), AddGlossInput{
		LexemeID: "L100", SenseID: "L100-S1", Language: "fr", Value: "mère",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	senses, ok := env.store.edits[0].Data["senses"].([]map[string]any)
	if !ok {
		t.Fatalf("senses payload has type %T", env.store.edits[0].Data["senses"])
	}
	if len(senses) != 2 {
		t.Fatalf("senses in payload = %d, want 2", len(senses))
	}
	if senses[1]["id"] != "L100-S2" {
		t.Errorf("untouched sense missing from payload: %v", senses[1])
	}
	if _, ok := senses[1]["claims"]; !ok {
		t.Error("unmodelled field of untouched sense was dropped")
	}
}

func TestAddGloss_Idempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())
	in := AddGlossInput{LexemeID: "L100", SenseID: "L100-S1", Language: "fr", Value: "mère"}

	for i := range 2 {
		if _, err := env.svc.AddGloss(authCtx(), in); err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i+1, err)
		}
	}

	stored, _ := env.store.lexemes["L100"].SenseByID("L100-S1")
	if len(stored.Glosses) != 2 || stored.Glosses["fr"].Value != "mère" {
		t.Errorf("glosses after repeat = %v", stored.Glosses)
	}
	if env.store.count("edit") != 2 {
		t.Errorf("edits = %d, want 2 (repeat is still issued)", env.store.count("edit"))
	}
}

func TestAddGloss_SenseNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())

	_, err := env.svc.AddGloss(authCtx(), AddGlossInput{
		LexemeID: "L100", SenseID: "L100-S9", Language: "fr", Value: "x",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if env.store.count("token") != 0 || env.store.count("edit") != 0 {
		t.Errorf("no token or write expected, calls = %v", env.store.calls)
	}
	if len(env.ledger.rows) != 0 {
		t.Error("ledger must stay empty")
	}
}

func TestAddGloss_LexemeNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	_, err := env.svc.AddGloss(authCtx(), AddGlossInput{
		LexemeID: "L5", SenseID: "L5-S1", Language: "fr", Value: "x",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestAddGloss_MissingRevision(t *testing.T) {
	t.Parallel()

	lex := glossLexeme()
	lex.LastRevID = 0
	env := newTestEnv(lex)

	_, err := env.svc.AddGloss(authCtx(), AddGlossInput{
		LexemeID: "L100", SenseID: "L100-S1", Language: "fr", Value: "x",
	})
	if !errors.Is(err, domain.ErrInconsistentState) {
		t.Fatalf("expected ErrInconsistentState, got: %v", err)
	}
}

func TestAddGloss_StaleRevisionIsConflict(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())
	// Another writer lands between our read and our write.
	env.store.afterGet = func(lex *domain.Lexeme) { lex.LastRevID++ }

	_, err := env.svc.AddGloss(authCtx(), AddGlossInput{
		LexemeID: "L100", SenseID: "L100-S1", Language: "fr", Value: "mère",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got: %v", err)
	}
	if env.store.count("edit") != 1 || env.store.count("get:") != 1 {
		t.Errorf("expected no retry, calls = %v", env.store.calls)
	}
	stored, _ := env.store.lexemes["L100"].SenseByID("L100-S1")
	if _, ok := stored.Glosses["fr"]; ok {
		t.Error("stale write must not be applied")
	}
	if len(env.ledger.rows) != 0 {
		t.Error("ledger must stay empty on conflict")
	}
}

func TestAddGloss_LedgerFailureKeepsRemoteSuccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())
	env.ledger.err = errors.New("db down")

	res, err := env.svc.AddGloss(authCtx(), AddGlossInput{
		LexemeID: "L100", SenseID: "L100-S1", Language: "fr", Value: "mère",
	})
	if err != nil {
		t.Fatalf("ledger failure must not fail the edit: %v", err)
	}
	if res.RevisionID != 43 {
		t.Errorf("revision = %d, want 43", res.RevisionID)
	}
	if env.tx.runs != 1 {
		t.Errorf("tx runs = %d, want 1", env.tx.runs)
	}
}

func TestAddGloss_TokenFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())
	env.store.tokenErr = domain.ErrPermissionDenied

	_, err := env.svc.AddGloss(authCtx(), AddGlossInput{
		LexemeID: "L100", SenseID: "L100-S1", Language: "fr", Value: "x",
	})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got: %v", err)
	}
	if env.store.count("edit") != 0 {
		t.Error("no write expected without a token")
	}
}

func TestAddGloss_Unauthorized(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())

	_, err := env.svc.AddGloss(context.Background(), AddGlossInput{
		LexemeID: "L100", SenseID: "L100-S1", Language: "fr", Value: "x",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
	if len(env.store.calls) != 0 {
		t.Errorf("no remote calls expected, got %v", env.store.calls)
	}
}

func TestAddGloss_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(glossLexeme())

	_, err := env.svc.AddGloss(authCtx(), AddGlossInput{LexemeID: "L100", SenseID: "L7-S1", Language: "", Value: ""})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if len(verr.Errors) != 3 {
		t.Errorf("field errors = %v, want 3", verr.Errors)
	}
	if len(env.store.calls) != 0 {
		t.Errorf("no remote calls expected, got %v", env.store.calls)
	}
}
