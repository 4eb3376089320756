package models

import "github.com/uptrace/bun"

// ParticipantMatch is the bridge row carrying one side's result in a match.
type ParticipantMatch struct {
	bun.BaseModel `bun:"table:participant_match,alias:pm"`

	ParticipantID string  `bun:"participant_id,pk" json:"participantID"`
	MatchID       string  `bun:"match_id,pk" json:"matchID"`
	IsWinner      *bool   `bun:"is_winner" json:"isWinner,omitempty"`
	Score         *int    `bun:"score" json:"score,omitempty"`
	ResultType    *string `bun:"result_type" json:"resultType,omitempty"`
	FallTime      *string `bun:"fall_time" json:"fallTime,omitempty"`
	NextMatchID   *string `bun:"next_match_id" json:"nextMatchID,omitempty"`
}
