package domain

// Lexeme is a request-scoped copy of a remote lexeme entity.
type Lexeme struct {
	ID              string
	Lemmas          map[string]Term
	Language        string
	LexicalCategory string
	Senses          []Sense
	Forms           []Form
	Claims          map[string][]Statement
	LastRevID       int64
}

// Term is a language-tagged text value (lemma, gloss, representation).
type Term struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Sense is one meaning of a lexeme.
type Sense struct {
	ID      string
	Glosses map[string]Term
	Claims  map[string][]Statement

	// Raw holds the sense exactly as the remote store returned it. Edits that
	// resubmit the senses array start from it so fields this service does not
	// model survive the round trip.
	Raw map[string]any
}

// Form is a morphological variant of a lexeme.
type Form struct {
	ID              string
	Representations map[string]Term
	Claims          map[string][]Statement
}

// Statement is a property-value assertion on an entity.
type Statement struct {
	ID       string
	Property string
	// Value is the decoded main-snak data value. Strings (including media
	// filenames) decode to string; entity ids decode to the id string.
	Value string
}

// SenseByID searches the full senses collection for id.
func (l *Lexeme) SenseByID(id string) (*Sense, bool) {
	for i := range l.Senses {
		if l.Senses[i].ID == id {
			return &l.Senses[i], true
		}
	}
	return nil, false
}

// FormByID searches the full forms collection for id.
func (l *Lexeme) FormByID(id string) (*Form, bool) {
	for i := range l.Forms {
		if l.Forms[i].ID == id {
			return &l.Forms[i], true
		}
	}
	return nil, false
}

// FirstValue returns the value of the first statement for property, if any.
func FirstValue(claims map[string][]Statement, property string) (string, bool) {
	stmts := claims[property]
	if len(stmts) == 0 || stmts[0].Value == "" {
		return "", false
	}
	return stmts[0].Value, true
}

// LexemeHit is one normalized search result.
type LexemeHit struct {
	ID          string
	Label       string
	Language    string
	Description string
}

// EditResult identifies the entity a write touched and the revision it produced.
type EditResult struct {
	LexemeID   string
	RevisionID int64
}
