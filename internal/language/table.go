// Package language is the static lookup table of supported languages.
package language

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

//go:embed languages.yaml
var embedded []byte

// Table maps language codes to labels and item ids. It is read-only after
// construction and safe for concurrent use.
type Table struct {
	byCode map[string]domain.Language
	all    []domain.Language
}

// Default returns the table built from the embedded language list.
func Default() (*Table, error) {
	return Parse(embedded)
}

// Parse builds a table from a YAML list of {code, label, qid} entries.
func Parse(data []byte) (*Table, error) {
	var entries []domain.Language
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("language: parse: %w", err)
	}

	t := &Table{byCode: make(map[string]domain.Language, len(entries))}
	for i, l := range entries {
		l.Code = strings.TrimSpace(l.Code)
		switch {
		case l.Code == "":
			return nil, fmt.Errorf("language: entry %d: empty code", i)
		case !domain.IsItemID(l.QID):
			return nil, fmt.Errorf("language: %s: invalid qid %q", l.Code, l.QID)
		}
		if _, dup := t.byCode[l.Code]; dup {
			return nil, fmt.Errorf("language: duplicate code %s", l.Code)
		}
		t.byCode[l.Code] = l
		t.all = append(t.all, l)
	}
	sort.Slice(t.all, func(i, j int) bool { return t.all[i].Code < t.all[j].Code })
	return t, nil
}

// Lookup returns the language for code or ErrUnsupportedLanguage.
func (t *Table) Lookup(code string) (domain.Language, error) {
	l, ok := t.byCode[code]
	if !ok {
		return domain.Language{}, fmt.Errorf("language %q: %w", code, domain.ErrUnsupportedLanguage)
	}
	return l, nil
}

// All returns every language ordered by code.
func (t *Table) All() []domain.Language {
	out := make([]domain.Language, len(t.all))
	copy(out, t.all)
	return out
}
