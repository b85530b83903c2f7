package domain

import (
	"regexp"
	"strings"
)

// EntityIDSeparator joins a lexeme id and a sub-entity suffix, as in
// "L123-F2" (form) or "L123-S1" (sense).
const EntityIDSeparator = "-"

var (
	lexemeIDPattern = regexp.MustCompile(`^L[1-9][0-9]*$`)
	itemIDPattern   = regexp.MustCompile(`^Q[1-9][0-9]*$`)
)

// IsLexemeID reports whether s is a bare lexeme id such as "L123".
func IsLexemeID(s string) bool { return lexemeIDPattern.MatchString(s) }

// IsItemID reports whether s is an item id such as "Q42".
func IsItemID(s string) bool { return itemIDPattern.MatchString(s) }

// OwnerLexemeID derives the owning lexeme id of a sub-entity id by splitting
// on EntityIDSeparator and taking the first segment. Ids without a separator
// or with an empty suffix are rejected; extra separators after the first are
// ignored, so "L1-F2-x" is owned by "L1".
func OwnerLexemeID(subID string) (string, error) {
	parts := strings.Split(subID, EntityIDSeparator)
	if len(parts) < 2 {
		return "", NewValidationError("id", "missing separator "+EntityIDSeparator+" in "+quote(subID))
	}
	if parts[1] == "" {
		return "", NewValidationError("id", "empty suffix in "+quote(subID))
	}
	if !IsLexemeID(parts[0]) {
		return "", NewValidationError("id", "invalid lexeme prefix in "+quote(subID))
	}
	return parts[0], nil
}

// FormOwner returns the lexeme id owning formID ("L1-F2" -> "L1").
func FormOwner(formID string) (string, error) {
	return ownerWithKind(formID, 'F')
}

// SenseOwner returns the lexeme id owning senseID ("L1-S2" -> "L1").
func SenseOwner(senseID string) (string, error) {
	return ownerWithKind(senseID, 'S')
}

// ResolveLexemeID accepts either a bare lexeme id or a sub-entity id and
// returns the lexeme id that carries the revision for it.
func ResolveLexemeID(id string) (string, error) {
	if IsLexemeID(id) {
		return id, nil
	}
	return OwnerLexemeID(id)
}

func ownerWithKind(id string, kind byte) (string, error) {
	owner, err := OwnerLexemeID(id)
	if err != nil {
		return "", err
	}
	suffix, _, _ := strings.Cut(id[len(owner)+len(EntityIDSeparator):], EntityIDSeparator)
	if suffix[0] != kind || !isSerial(suffix[1:]) {
		return "", NewValidationError("id", "expected "+string(kind)+"{n} suffix in "+quote(id))
	}
	return owner, nil
}

// isSerial reports whether s is a positive decimal without leading zeros.
func isSerial(s string) bool {
	if s == "" || s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func quote(s string) string { return `"` + s + `"` }
