package domain

import (
	"time"

	"github.com/google/uuid"
)

// HuntCodeOption is one externally published draw code. The code is a
// hyphen-delimited string whose second segment encodes a weapon digit
// (e.g. "EE-1-294", second segment "1" = rifle). The species field is a
// free-text label from the state catalog and is not normalized. Rows are
// imported out-of-band and treated as immutable snapshots.
type HuntCodeOption struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	State           string     `json:"state" db:"state"`
	Code            string     `json:"code" db:"code"`
	Species         string     `json:"species" db:"species"`
	UnitDescription string     `json:"unit_description" db:"unit_description"`
	SeasonText      string     `json:"season_text" db:"season_text"`
	StartDate       *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty" db:"end_date"`
	ImportedAt      time.Time  `json:"imported_at" db:"imported_at"`
}
