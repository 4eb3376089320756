package models

import "github.com/uptrace/bun"

// Participant is a role's appearance at a school for one year and weight class.
type Participant struct {
	bun.BaseModel `bun:"table:participant,alias:part"`

	ParticipantID string  `bun:"participant_id,pk" json:"participantID"`
	RoleID        string  `bun:"role_id,notnull" json:"roleID"`
	SchoolID      *string `bun:"school_id" json:"schoolID,omitempty"`
	Year          *int    `bun:"year" json:"year,omitempty"`
	WeightClass   *string `bun:"weight_class" json:"weightClass,omitempty"`
	Seed          *int    `bun:"seed" json:"seed,omitempty"`
}
