package models

import "github.com/uptrace/bun"

// Tournament is a single event holding many weight-class brackets.
type Tournament struct {
	bun.BaseModel `bun:"table:tournament,alias:t"`

	TournamentID string  `bun:"tournament_id,pk" json:"tournamentID"`
	Name         string  `bun:"name,notnull" json:"name"`
	Date         *string `bun:"date,type:date" json:"date,omitempty"`
	Year         *int    `bun:"year" json:"year,omitempty"`
	Location     *string `bun:"location" json:"location,omitempty"`
}
