package domain

import "time"

// Contribution is one row of the local, append-only edit ledger. A row is
// written once per successful remote edit and never updated.
type Contribution struct {
	ID        int64
	WDItem    string
	Username  string
	LangCode  string
	EditType  EditType
	Data      string
	Date      time.Time
	CreatedAt time.Time
}

// ContributionFilter narrows ledger listings. Zero values mean "any".
type ContributionFilter struct {
	Username string
	LangCode string
	EditType EditType
	Limit    int
	Offset   int
}
