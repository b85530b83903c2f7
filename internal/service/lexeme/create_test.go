package lexeme

import (
	"context"
	"errors"
	"testing"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

func TestCreateLexeme_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	res, err := env.svc.CreateLexeme(authCtx(), CreateLexemeInput{
		Language: "de", Value: " Haus ", CategoryID: "1084",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LexemeID == "" || res.RevisionID != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.SenseID != "" {
		t.Errorf("no sense requested, got %q", res.SenseID)
	}

	edit := env.store.edits[0]
	if edit.New != "lexeme" || edit.ID != "" || edit.BaseRevID != 0 {
		t.Errorf("expected new-entity edit without baserevid, got %+v", edit)
	}
	if got := edit.Data["language"]; got != "Q188" {
		t.Errorf("language = %v, want Q188", got)
	}
	if got := edit.Data["lexicalCategory"]; got != "Q1084" {
		t.Errorf("lexicalCategory = %v, want Q1084", got)
	}
	lemmas := edit.Data["lemmas"].(map[string]domain.Term)
	if lemmas["de"].Value != "Haus" {
		t.Errorf("lemma = %+v", lemmas["de"])
	}
	if _, ok := edit.Data["senses"]; ok {
		t.Error("senses must be omitted without a gloss")
	}

	if len(env.ledger.rows) != 1 || env.ledger.rows[0].EditType != domain.EditTypeLexemeCreate {
		t.Fatalf("ledger rows = %+v", env.ledger.rows)
	}
	if env.ledger.rows[0].WDItem != res.LexemeID {
		t.Errorf("ledger wd_item = %q, want %q", env.ledger.rows[0].WDItem, res.LexemeID)
	}
}

func TestCreateLexeme_WithInitialSense(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	res, err := env.svc.CreateLexeme(authCtx(), CreateLexemeInput{
		Language: "fr", Value: "maison", CategoryID: "Q1084", GlossLanguage: "en", Gloss: "house",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SenseID != res.LexemeID+"-S1" {
		t.Errorf("sense id = %q", res.SenseID)
	}
	sense, _ := env.store.lexemes[res.LexemeID].SenseByID(res.SenseID)
	if sense.Glosses["en"].Value != "house" {
		t.Errorf("gloss = %+v", sense.Glosses)
	}
}

func TestCreateLexeme_UnsupportedLanguageMakesNoRemoteCall(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	_, err := env.svc.CreateLexeme(authCtx(), CreateLexemeInput{
		Language: "xx", Value: "word", CategoryID: "Q1084",
	})
	if !errors.Is(err, domain.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got: %v", err)
	}
	if len(env.store.calls) != 0 {
		t.Errorf("expected zero remote calls, got %v", env.store.calls)
	}
	if len(env.ledger.rows) != 0 {
		t.Error("ledger must stay empty")
	}
}

func TestCreateLexeme_RemoteRejection(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.store.editErr = &domain.APIError{Code: "modification-failed", Info: "bad"}

	_, err := env.svc.CreateLexeme(authCtx(), CreateLexemeInput{Language: "de", Value: "Haus", CategoryID: "Q1084"})
	if !errors.Is(err, domain.ErrRejected) {
		t.Fatalf("expected ErrRejected, got: %v", err)
	}
	if len(env.ledger.rows) != 0 {
		t.Error("ledger must stay empty")
	}
}

func TestCreateLexeme_Unauthorized(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	_, err := env.svc.CreateLexeme(context.Background(), CreateLexemeInput{Language: "de", Value: "Haus", CategoryID: "Q1084"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
}

func TestCreateLexeme_InvalidCategory(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	_, err := env.svc.CreateLexeme(authCtx(), CreateLexemeInput{Language: "de", Value: "Haus", CategoryID: "noun"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if len(env.store.calls) != 0 {
		t.Errorf("expected zero remote calls, got %v", env.store.calls)
	}
}
