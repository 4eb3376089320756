package models

import "github.com/uptrace/bun"

// Match is one bout. Round is free text; RoundOrder is a hint the source
// data does not keep reliable.
type Match struct {
	bun.BaseModel `bun:"table:match,alias:m"`

	MatchID      string  `bun:"match_id,pk" json:"matchID"`
	Round        *string `bun:"round" json:"round,omitempty"`
	RoundOrder   *int    `bun:"round_order" json:"roundOrder,omitempty"`
	BracketOrder *int    `bun:"bracket_order" json:"bracketOrder,omitempty"`
	TournamentID *string `bun:"tournament_id" json:"tournamentID,omitempty"`
	ResultType   *string `bun:"result_type" json:"resultType,omitempty"`
	FallTime     *string `bun:"fall_time" json:"fallTime,omitempty"`
}
