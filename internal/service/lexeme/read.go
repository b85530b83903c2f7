package lexeme

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

// SearchInput is a free-text lexeme search in one language. With Exact only
// hits whose label equals Search in Language are returned.
type SearchInput struct {
	Search   string
	Language string
	Exact    bool
}

// SearchLexemes searches the knowledge store for lexemes.
func (s *Service) SearchLexemes(ctx context.Context, in SearchInput) ([]domain.LexemeHit, error) {
	var errs []domain.FieldError
	if strings.TrimSpace(in.Search) == "" {
		errs = append(errs, domain.FieldError{Field: "search", Message: "required"})
	}
	if strings.TrimSpace(in.Language) == "" {
		errs = append(errs, domain.FieldError{Field: "src_lang", Message: "required"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	hits, err := s.store.SearchLexemes(ctx, strings.TrimSpace(in.Search), strings.TrimSpace(in.Language), in.Exact)
	if err != nil {
		return nil, fmt.Errorf("search lexemes: %w", err)
	}
	return hits, nil
}

// ---------------------------------------------------------------------------
// Glosses view
// ---------------------------------------------------------------------------

// GlossesView is a lexeme with its glosses in the requested languages.
type GlossesView struct {
	LexemeID             string
	LexicalCategoryID    string
	LexicalCategoryLabel string
	LanguageLabel        string
	Image                string
	Glosses              []GlossView
}

// GlossView is one gloss. FormID and Audio refer to the first form that has
// a representation in the gloss language; Audio is empty when that form has
// no pronunciation.
type GlossView struct {
	SenseID  string
	Language string
	Value    string
	FormID   string
	Audio    string
}

// GetLexemeGlosses returns the glosses of every sense of q.LexemeID in
// q.SrcLang, q.Lang1 and q.Lang2, with category label, sense image and
// per-language pronunciation.
func (s *Service) GetLexemeGlosses(ctx context.Context, q GlossesQuery) (*GlossesView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	langs := q.languages()

	lex, err := s.store.GetLexeme(ctx, q.LexemeID, langs...)
	if err != nil {
		return nil, fmt.Errorf("get lexeme glosses: %w", err)
	}

	view := &GlossesView{
		LexemeID:          lex.ID,
		LexicalCategoryID: lex.LexicalCategory,
	}

	loader := newLabelLoader(s.store, strings.TrimSpace(q.SrcLang))
	var categoryLabel, languageLabel func() (string, error)
	if lex.LexicalCategory != "" {
		categoryLabel = loader.Load(ctx, lex.LexicalCategory)
	}
	if lex.Language != "" {
		languageLabel = loader.Load(ctx, lex.Language)
	}
	if categoryLabel != nil {
		if view.LexicalCategoryLabel, err = categoryLabel(); err != nil {
			return nil, fmt.Errorf("get lexeme glosses: category label: %w", err)
		}
	}
	if languageLabel != nil {
		if view.LanguageLabel, err = languageLabel(); err != nil {
			return nil, fmt.Errorf("get lexeme glosses: language label: %w", err)
		}
	}

	if len(lex.Senses) > 0 {
		if image, ok := domain.FirstValue(lex.Senses[0].Claims, s.cfg.ImageProperty); ok {
			view.Image = s.media.FilePathURL(image)
		}
	}

	for _, sense := range lex.Senses {
		for _, lang := range langs {
			gloss, ok := sense.Glosses[lang]
			if !ok {
				continue
			}
			gv := GlossView{SenseID: sense.ID, Language: gloss.Language, Value: gloss.Value}
			if form, ok := formInLanguage(lex.Forms, lang); ok {
				gv.FormID = form.ID
				if audio, ok := domain.FirstValue(form.Claims, s.cfg.AudioProperty); ok {
					gv.Audio = s.media.FilePathURL(audio)
				}
			}
			view.Glosses = append(view.Glosses, gv)
		}
	}

	return view, nil
}

func formInLanguage(forms []domain.Form, lang string) (*domain.Form, bool) {
	for i := range forms {
		if _, ok := forms[i].Representations[lang]; ok {
			return &forms[i], true
		}
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Forms without audio
// ---------------------------------------------------------------------------

// FormView is a form with its representation in the requested language.
type FormView struct {
	FormID         string
	Representation string
}

// FormsMissingAudio lists forms of lexemeID that have a representation in
// language but no pronunciation statement.
func (s *Service) FormsMissingAudio(ctx context.Context, lexemeID, language string) ([]FormView, error) {
	var errs []domain.FieldError
	if !domain.IsLexemeID(lexemeID) {
		errs = append(errs, domain.FieldError{Field: "id", Message: "must be a lexeme id"})
	}
	if strings.TrimSpace(language) == "" {
		errs = append(errs, domain.FieldError{Field: "lang", Message: "required"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	lex, err := s.store.GetLexeme(ctx, lexemeID, language)
	if err != nil {
		return nil, fmt.Errorf("forms missing audio: %w", err)
	}

	forms := []FormView{}
	for _, form := range lex.Forms {
		rep, ok := form.Representations[language]
		if !ok {
			continue
		}
		if len(form.Claims[s.cfg.AudioProperty]) > 0 {
			continue
		}
		forms = append(forms, FormView{FormID: form.ID, Representation: rep.Value})
	}
	return forms, nil
}

// ---------------------------------------------------------------------------
// Media
// ---------------------------------------------------------------------------

// FileURLs resolves media file titles to URLs.
func (s *Service) FileURLs(ctx context.Context, titles []string) ([]domain.MediaFile, error) {
	files, err := s.media.FileURLs(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("file urls: %w", err)
	}
	return files, nil
}
