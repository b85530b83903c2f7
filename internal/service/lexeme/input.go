package lexeme

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

const (
	maxTermLength     = 1000
	maxAudioBatchSize = 50
	maxFilenameLength = 240
)

// ---------------------------------------------------------------------------
// AddGlossInput
// ---------------------------------------------------------------------------

// AddGlossInput sets the gloss of one sense in one language.
type AddGlossInput struct {
	LexemeID string
	SenseID  string
	Language string
	Value    string
}

// Validate checks all fields and collects all errors.
func (i AddGlossInput) Validate() error {
	var errs []domain.FieldError

	if !domain.IsLexemeID(i.LexemeID) {
		errs = append(errs, domain.FieldError{Field: "lexeme_id", Message: "must be a lexeme id"})
	}
	owner, err := domain.SenseOwner(i.SenseID)
	switch {
	case err != nil:
		errs = append(errs, domain.FieldError{Field: "sense_id", Message: "must be a sense id"})
	case domain.IsLexemeID(i.LexemeID) && owner != i.LexemeID:
		errs = append(errs, domain.FieldError{Field: "sense_id", Message: "belongs to another lexeme"})
	}
	errs = validateTerm(errs, "language", "value", i.Language, i.Value)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// CreateLexemeInput
// ---------------------------------------------------------------------------

// CreateLexemeInput describes a new lexeme with a single lemma. When Gloss is
// set the lexeme is created with one sense carrying it.
type CreateLexemeInput struct {
	Language   string
	Value      string
	CategoryID string

	GlossLanguage string
	Gloss         string
}

// Validate checks all fields and collects all errors.
func (i CreateLexemeInput) Validate() error {
	var errs []domain.FieldError

	errs = validateTerm(errs, "language", "value", i.Language, i.Value)
	if _, ok := normalizeItemID(i.CategoryID); !ok {
		errs = append(errs, domain.FieldError{Field: "category_id", Message: "must be an item id"})
	}
	if i.Gloss != "" {
		errs = validateValue(errs, "gloss", i.Gloss)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// AudioItem
// ---------------------------------------------------------------------------

// AudioItem is one pronunciation recording to attach to a form.
type AudioItem struct {
	LangQID           string
	LangLabel         string
	FileContentBase64 string
	FormID            string
	Filename          string
}

// decode validates the item and returns the owning lexeme id and the raw
// file content.
func (i AudioItem) decode() (string, []byte, error) {
	var errs []domain.FieldError

	lexemeID, err := domain.FormOwner(i.FormID)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "form_id", Message: "must be a form id"})
	}
	if !domain.IsItemID(i.LangQID) {
		errs = append(errs, domain.FieldError{Field: "lang_qid", Message: "must be an item id"})
	}
	if strings.TrimSpace(i.LangLabel) == "" {
		errs = append(errs, domain.FieldError{Field: "lang_label", Message: "required"})
	}
	switch name := strings.TrimSpace(i.Filename); {
	case name == "":
		errs = append(errs, domain.FieldError{Field: "filename", Message: "required"})
	case len(name) > maxFilenameLength:
		errs = append(errs, domain.FieldError{Field: "filename", Message: fmt.Sprintf("too long (max %d)", maxFilenameLength)})
	case strings.ContainsAny(name, "/|#[]{}<>"):
		errs = append(errs, domain.FieldError{Field: "filename", Message: "contains forbidden characters"})
	}

	content, err := base64.StdEncoding.DecodeString(i.FileContentBase64)
	switch {
	case err != nil:
		errs = append(errs, domain.FieldError{Field: "file_content", Message: "invalid base64"})
	case len(content) == 0:
		errs = append(errs, domain.FieldError{Field: "file_content", Message: "required"})
	}

	if len(errs) > 0 {
		return "", nil, domain.NewValidationErrors(errs)
	}
	return lexemeID, content, nil
}

// ---------------------------------------------------------------------------
// AddTranslationInput
// ---------------------------------------------------------------------------

// AddTranslationInput links BaseLexeme to a sense in another language. With
// IsNew the target lexeme is created first from Value and CategoryID, with
// one sense glossed by Gloss; otherwise TranslationSenseID names an existing
// sense and is trusted as given.
type AddTranslationInput struct {
	BaseLexeme          string
	TranslationLanguage string
	TranslationSenseID  string
	IsNew               bool

	Value         string
	CategoryID    string
	GlossLanguage string
	Gloss         string
}

// Validate checks all fields and collects all errors.
func (i AddTranslationInput) Validate() error {
	var errs []domain.FieldError

	if !isLexemeOrSense(i.BaseLexeme) {
		errs = append(errs, domain.FieldError{Field: "base_lexeme", Message: "must be a lexeme or sense id"})
	}
	if strings.TrimSpace(i.TranslationLanguage) == "" {
		errs = append(errs, domain.FieldError{Field: "translation_language", Message: "required"})
	}

	if i.IsNew {
		errs = validateValue(errs, "value", i.Value)
		if _, ok := normalizeItemID(i.CategoryID); !ok {
			errs = append(errs, domain.FieldError{Field: "category_id", Message: "must be an item id"})
		}
		if strings.TrimSpace(i.Gloss) == "" {
			errs = append(errs, domain.FieldError{Field: "gloss", Message: "required for a new lexeme"})
		}
	} else if _, err := domain.SenseOwner(i.TranslationSenseID); err != nil {
		errs = append(errs, domain.FieldError{Field: "translation_sense_id", Message: "must be a sense id"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func isLexemeOrSense(id string) bool {
	if domain.IsLexemeID(id) {
		return true
	}
	_, err := domain.SenseOwner(id)
	return err == nil
}

// ---------------------------------------------------------------------------
// GlossesQuery
// ---------------------------------------------------------------------------

// GlossesQuery selects the glosses view of one lexeme in up to three languages.
type GlossesQuery struct {
	LexemeID string
	SrcLang  string
	Lang1    string
	Lang2    string
}

// Validate checks all fields and collects all errors.
func (q GlossesQuery) Validate() error {
	var errs []domain.FieldError

	if !domain.IsLexemeID(q.LexemeID) {
		errs = append(errs, domain.FieldError{Field: "id", Message: "must be a lexeme id"})
	}
	if strings.TrimSpace(q.SrcLang) == "" {
		errs = append(errs, domain.FieldError{Field: "src_lang", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (q GlossesQuery) languages() []string {
	seen := make(map[string]bool, 3)
	var langs []string
	for _, l := range []string{q.SrcLang, q.Lang1, q.Lang2} {
		if l = strings.TrimSpace(l); l != "" && !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	return langs
}

// ---------------------------------------------------------------------------
// Validation helpers (private)
// ---------------------------------------------------------------------------

func validateTerm(errs []domain.FieldError, langField, valueField, language, value string) []domain.FieldError {
	if strings.TrimSpace(language) == "" {
		errs = append(errs, domain.FieldError{Field: langField, Message: "required"})
	}
	return validateValue(errs, valueField, value)
}

func validateValue(errs []domain.FieldError, field, value string) []domain.FieldError {
	switch {
	case strings.TrimSpace(value) == "":
		errs = append(errs, domain.FieldError{Field: field, Message: "required"})
	case len(value) > maxTermLength:
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("too long (max %d)", maxTermLength)})
	}
	return errs
}

// normalizeItemID accepts "Q1084" or a bare numeric id "1084".
func normalizeItemID(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		id = "Q" + id
	}
	return id, domain.IsItemID(id)
}
