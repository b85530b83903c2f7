package domain

import "encoding/json"

// EntityEdit describes one whole-entity write. Exactly one of ID and New must
// be set; BaseRevID is required together with ID.
type EntityEdit struct {
	ID        string
	New       string
	BaseRevID int64
	Data      map[string]any
	Summary   string
}

// ClaimWrite describes a statement or qualifier write.
type ClaimWrite struct {
	Property  string
	Value     SnakValue
	BaseRevID int64
	Summary   string
}

// ClaimResult identifies a written statement and the revision it produced.
type ClaimResult struct {
	ClaimID    string
	RevisionID int64
}

// SnakValue is the data value of a statement main snak or qualifier.
// Either Text is set (string and media values) or EntityType with EntityID.
type SnakValue struct {
	Text       string
	EntityType string
	EntityID   string
}

// StringSnak builds a string or media-file value.
func StringSnak(s string) SnakValue { return SnakValue{Text: s} }

// EntitySnak builds an entity reference value ("item", "sense", "lexeme").
func EntitySnak(entityType, id string) SnakValue {
	return SnakValue{EntityType: entityType, EntityID: id}
}

// JSON encodes v the way the remote write API expects its value parameter.
func (v SnakValue) JSON() string {
	var b []byte
	if v.EntityType != "" {
		b, _ = json.Marshal(map[string]string{"entity-type": v.EntityType, "id": v.EntityID})
	} else {
		b, _ = json.Marshal(v.Text)
	}
	return string(b)
}

// MediaUpload is one file to store on the media repository.
type MediaUpload struct {
	Filename      string
	Content       []byte
	LanguageLabel string
}

// UploadResult names the file that now holds the content. Duplicate is set
// when the repository already had identical content under Filename.
type UploadResult struct {
	Filename  string
	Duplicate bool
}

// MediaFile is a media repository file title with its resolved URL.
type MediaFile struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
