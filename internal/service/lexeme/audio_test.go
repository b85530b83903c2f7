package lexeme

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

func audioLexeme() *domain.Lexeme {
	return &domain.Lexeme{
		ID:        "L7",
		LastRevID: 10,
		Forms: []domain.Form{
			{ID: "L7-F1", Representations: map[string]domain.Term{"de": {Language: "de", Value: "Haus"}}},
			{ID: "L7-F2", Representations: map[string]domain.Term{"de": {Language: "de", Value: "Häuser"}}},
		},
	}
}

func audioItem(formID, filename string) AudioItem {
	return AudioItem{
		LangQID:           "Q188",
		LangLabel:         "German",
		FileContentBase64: base64.StdEncoding.EncodeToString([]byte("OggS" + filename)),
		FormID:            formID,
		Filename:          filename,
	}
}

func TestAddAudio_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(audioLexeme())

	res, err := env.svc.AddAudio(authCtx(), []AudioItem{audioItem("L7-F1", "De-Haus.ogg")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Err() != nil {
		t.Fatalf("unexpected batch failure: %v", res.Failures)
	}
	if len(res.Results) != 1 || res.Results[0].LexemeID != "L7" || res.Results[0].RevisionID != 12 {
		t.Fatalf("results = %+v", res.Results)
	}

	if string(env.media.uploads[0].Content) != "OggSDe-Haus.ogg" {
		t.Errorf("uploaded content = %q", env.media.uploads[0].Content)
	}
	if env.media.uploads[0].LanguageLabel != "German" {
		t.Errorf("language label = %q", env.media.uploads[0].LanguageLabel)
	}

	claim := env.store.claims[0]
	if claim.target != "L7-F1" || claim.in.Property != "P443" || claim.in.Value.Text != "De-Haus.ogg" || claim.in.BaseRevID != 10 {
		t.Errorf("claim = %+v", claim)
	}
	qual := env.store.qualifiers[0]
	if qual.in.Property != "P407" || qual.in.Value != domain.EntitySnak("item", "Q188") || qual.in.BaseRevID != 11 {
		t.Errorf("qualifier = %+v", qual)
	}

	// Claim and qualifier each negotiate their own token.
	if got := env.store.count("token"); got != 2 {
		t.Errorf("store tokens = %d, want 2", got)
	}
	if len(env.ledger.rows) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(env.ledger.rows))
	}
	row := env.ledger.rows[0]
	if row.WDItem != "L7" || row.LangCode != "German" || row.Data != "De-Haus.ogg" || row.EditType != domain.EditTypeAudioAdd {
		t.Errorf("ledger row = %+v", row)
	}
}

func TestAddAudio_SecondUploadFailsFirstStands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(audioLexeme())
	env.media.uploadFunc = func(in domain.MediaUpload) (domain.UploadResult, error) {
		if in.Filename == "De-Häuser.ogg" {
			return domain.UploadResult{}, domain.ErrUpstreamUnavailable
		}
		return domain.UploadResult{Filename: in.Filename}, nil
	}

	res, err := env.svc.AddAudio(authCtx(), []AudioItem{
		audioItem("L7-F1", "De-Haus.ogg"),
		audioItem("L7-F2", "De-Häuser.ogg"),
	})
	if err != nil {
		t.Fatalf("batch must not fail as a whole: %v", err)
	}
	if len(res.Results) != 1 || res.Results[0].LexemeID != "L7" {
		t.Fatalf("results = %+v, want exactly item 1", res.Results)
	}
	if len(res.Failures) != 1 || res.Failures[0].Index != 1 || res.Failures[0].FormID != "L7-F2" {
		t.Fatalf("failures = %+v", res.Failures)
	}
	if !errors.Is(res.Failures[0].Err, domain.ErrUpstreamUnavailable) {
		t.Errorf("failure cause = %v", res.Failures[0].Err)
	}

	var pbe *domain.PartialBatchError
	if !errors.As(res.Err(), &pbe) || pbe.Failed != 1 || pbe.Total != 2 {
		t.Errorf("batch error = %v", res.Err())
	}
	if !errors.Is(res.Err(), domain.ErrPartialBatchFailure) {
		t.Error("expected ErrPartialBatchFailure")
	}

	if len(env.store.claims) != 1 {
		t.Errorf("claims = %d, want 1", len(env.store.claims))
	}
	if len(env.ledger.rows) != 1 {
		t.Errorf("ledger rows = %d, want 1", len(env.ledger.rows))
	}
}

func TestAddAudio_FirstFailsLaterItemsContinue(t *testing.T) {
	t.Parallel()

	env := newTestEnv(audioLexeme())

	res, err := env.svc.AddAudio(authCtx(), []AudioItem{
		audioItem("L7-F9", "De-Nope.ogg"),
		audioItem("L7-F2", "De-Häuser.ogg"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Failures) != 1 || !errors.Is(res.Failures[0].Err, domain.ErrNotFound) {
		t.Fatalf("failures = %+v", res.Failures)
	}
	if len(res.Results) != 1 {
		t.Fatalf("results = %+v", res.Results)
	}
}

func TestAddAudio_StopsStartingItemsAfterDeadline(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(authCtx())
	defer cancel()

	env := newTestEnv(audioLexeme())
	env.media.uploadFunc = func(in domain.MediaUpload) (domain.UploadResult, error) {
		cancel()
		return domain.UploadResult{Filename: in.Filename}, nil
	}

	res, err := env.svc.AddAudio(ctx, []AudioItem{
		audioItem("L7-F1", "De-Haus.ogg"),
		audioItem("L7-F2", "De-Häuser.ogg"),
		audioItem("L7-F3", "De-Hause.ogg"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.media.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(env.media.uploads))
	}
	notAttempted := 0
	for _, f := range res.Failures {
		if f.Index == 0 {
			continue
		}
		notAttempted++
		if !errors.Is(f.Err, context.Canceled) {
			t.Errorf("failure %d cause = %v", f.Index, f.Err)
		}
	}
	if notAttempted != 2 {
		t.Fatalf("failures = %+v, want items 1 and 2 not attempted", res.Failures)
	}
	if res.Total != 3 {
		t.Errorf("total = %d, want 3", res.Total)
	}
}

func TestAddAudio_DuplicateReusesExistingFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(audioLexeme())
	env.media.uploadFunc = func(domain.MediaUpload) (domain.UploadResult, error) {
		return domain.UploadResult{Filename: "LL-Q188-Old-Haus.ogg", Duplicate: true}, nil
	}

	res, err := env.svc.AddAudio(authCtx(), []AudioItem{audioItem("L7-F1", "De-Haus.ogg")})
	if err != nil || res.Err() != nil {
		t.Fatalf("unexpected error: %v / %v", err, res.Err())
	}
	if got := env.store.claims[0].in.Value.Text; got != "LL-Q188-Old-Haus.ogg" {
		t.Errorf("claim value = %q, want existing file", got)
	}
	if got := env.ledger.rows[0].Data; got != "LL-Q188-Old-Haus.ogg" {
		t.Errorf("ledger data = %q", got)
	}
}

func TestAddAudio_QualifierFailureRecordsNothing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(audioLexeme())
	env.store.qualifierErr = &domain.APIError{Code: "badtoken", Kind: domain.ErrPermissionDenied}

	res, err := env.svc.AddAudio(authCtx(), []AudioItem{audioItem("L7-F1", "De-Haus.ogg")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Failures) != 1 || !errors.Is(res.Failures[0].Err, domain.ErrPermissionDenied) {
		t.Fatalf("failures = %+v", res.Failures)
	}
	if len(env.ledger.rows) != 0 {
		t.Error("ledger row must only follow a successful qualifier")
	}
}

func TestAddAudio_InvalidItemMakesNoRemoteCall(t *testing.T) {
	t.Parallel()

	env := newTestEnv(audioLexeme())
	item := audioItem("L7", "De-Haus.ogg")
	item.FileContentBase64 = "%%%"

	res, err := env.svc.AddAudio(authCtx(), []AudioItem{item})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var verr *domain.ValidationError
	if len(res.Failures) != 1 || !errors.As(res.Failures[0].Err, &verr) {
		t.Fatalf("failures = %+v", res.Failures)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("field errors = %v, want form_id and file_content", verr.Errors)
	}
	if len(env.media.calls) != 0 || len(env.store.calls) != 0 {
		t.Errorf("expected no remote calls, media=%v store=%v", env.media.calls, env.store.calls)
	}
}

func TestAddAudio_EmptyBatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	if _, err := env.svc.AddAudio(authCtx(), nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}
