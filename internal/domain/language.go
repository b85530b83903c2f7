package domain

// Language is an entry of the static language lookup table.
type Language struct {
	Code  string `yaml:"code"  json:"lang_code"`
	Label string `yaml:"label" json:"lang_label"`
	QID   string `yaml:"qid"   json:"lang_wd_id"`
}
