package domain

// EditType classifies a contribution recorded in the local ledger.
type EditType string

const (
	EditTypeLexemeCreate   EditType = "lexeme-create"
	EditTypeGlossAdd       EditType = "gloss-add"
	EditTypeAudioAdd       EditType = "audio-add"
	EditTypeTranslationAdd EditType = "translation-add"
)

func (e EditType) String() string { return string(e) }

func (e EditType) IsValid() bool {
	switch e {
	case EditTypeLexemeCreate, EditTypeGlossAdd, EditTypeAudioAdd, EditTypeTranslationAdd:
		return true
	}
	return false
}
