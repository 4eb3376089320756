package models

import "github.com/uptrace/bun"

// School is referenced by participations.
type School struct {
	bun.BaseModel `bun:"table:school,alias:s"`

	SchoolID   string  `bun:"school_id,pk" json:"schoolID"`
	Name       string  `bun:"name,notnull" json:"name"`
	Location   *string `bun:"location" json:"location,omitempty"`
	Mascot     *string `bun:"mascot" json:"mascot,omitempty"`
	SchoolType *string `bun:"school_type" json:"schoolType,omitempty"`
}
