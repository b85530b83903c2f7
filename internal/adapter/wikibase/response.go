package wikibase

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// objectMap decodes a JSON object, tolerating the empty array PHP emits for
// empty maps.
type objectMap[V any] map[string]V

func (m *objectMap[V]) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "[]" {
		*m = objectMap[V]{}
		return nil
	}
	var tmp map[string]V
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*m = tmp
	return nil
}

type getEntitiesResponse struct {
	Entities map[string]json.RawMessage `json:"entities"`
}

type apiEntity struct {
	ID              string                    `json:"id"`
	Missing         *string                   `json:"missing"`
	LastRevID       int64                     `json:"lastrevid"`
	Lemmas          objectMap[domain.Term]    `json:"lemmas"`
	Labels          objectMap[domain.Term]    `json:"labels"`
	Language        string                    `json:"language"`
	LexicalCategory string                    `json:"lexicalCategory"`
	Claims          objectMap[[]apiStatement] `json:"claims"`
	Senses          []json.RawMessage         `json:"senses"`
	Forms           []apiForm                 `json:"forms"`
}

type apiSense struct {
	ID      string                    `json:"id"`
	Glosses objectMap[domain.Term]    `json:"glosses"`
	Claims  objectMap[[]apiStatement] `json:"claims"`
}

type apiForm struct {
	ID              string                    `json:"id"`
	Representations objectMap[domain.Term]    `json:"representations"`
	Claims          objectMap[[]apiStatement] `json:"claims"`
}

type apiStatement struct {
	ID       string `json:"id"`
	MainSnak struct {
		Property  string `json:"property"`
		DataValue *struct {
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

type searchResponse struct {
	Search []apiSearchHit `json:"search"`
}

type apiSearchHit struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Match       apiMatch `json:"match"`
}

type apiMatch struct {
	Type     string `json:"type"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type editEntityResponse struct {
	Entity json.RawMessage `json:"entity"`
}

type claimResponse struct {
	PageInfo struct {
		LastRevID int64 `json:"lastrevid"`
	} `json:"pageinfo"`
	Claim struct {
		ID string `json:"id"`
	} `json:"claim"`
}

// decodeLexeme maps a raw entity document to a domain.Lexeme. Senses keep
// their raw form so edits can resubmit them untouched.
func decodeLexeme(raw json.RawMessage) (*domain.Lexeme, error) {
	var e apiEntity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decode entity: %w: %v", domain.ErrInconsistentState, err)
	}
	if e.Missing != nil {
		return nil, fmt.Errorf("entity %s: %w", e.ID, domain.ErrNotFound)
	}

	lex := &domain.Lexeme{
		ID:              e.ID,
		Lemmas:          e.Lemmas,
		Language:        e.Language,
		LexicalCategory: e.LexicalCategory,
		Claims:          mapStatements(e.Claims),
		LastRevID:       e.LastRevID,
		Senses:          make([]domain.Sense, 0, len(e.Senses)),
		Forms:           make([]domain.Form, 0, len(e.Forms)),
	}

	for _, rawSense := range e.Senses {
		var s apiSense
		if err := json.Unmarshal(rawSense, &s); err != nil {
			return nil, fmt.Errorf("decode sense: %w: %v", domain.ErrInconsistentState, err)
		}
		var asMap map[string]any
		if err := json.Unmarshal(rawSense, &asMap); err != nil {
			return nil, fmt.Errorf("decode sense: %w: %v", domain.ErrInconsistentState, err)
		}
		glosses := s.Glosses
		if glosses == nil {
			glosses = map[string]domain.Term{}
		}
		lex.Senses = append(lex.Senses, domain.Sense{
			ID:      s.ID,
			Glosses: glosses,
			Claims:  mapStatements(s.Claims),
			Raw:     asMap,
		})
	}

	for _, f := range e.Forms {
		lex.Forms = append(lex.Forms, domain.Form{
			ID:              f.ID,
			Representations: f.Representations,
			Claims:          mapStatements(f.Claims),
		})
	}

	return lex, nil
}

func mapStatements(in objectMap[[]apiStatement]) map[string][]domain.Statement {
	out := make(map[string][]domain.Statement, len(in))
	for prop, stmts := range in {
		for _, st := range stmts {
			out[prop] = append(out[prop], domain.Statement{
				ID:       st.ID,
				Property: prop,
				Value:    decodeValue(st),
			})
		}
	}
	return out
}

// decodeValue flattens a snak data value: strings as-is, entity values to
// their id. Other value types decode to "".
func decodeValue(st apiStatement) string {
	if st.MainSnak.DataValue == nil {
		return ""
	}
	raw := st.MainSnak.DataValue.Value

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var entity struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &entity); err == nil {
		return entity.ID
	}
	return ""
}
