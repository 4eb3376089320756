package models

import "strings"

// SideRow is a flat scan target for one bridge row joined with its
// participant, role, person and school.
type SideRow struct {
	MatchID       string  `bun:"match_id"`
	ParticipantID string  `bun:"participant_id"`
	PersonID      string  `bun:"person_id"`
	FirstName     string  `bun:"first_name"`
	LastName      string  `bun:"last_name"`
	SchoolID      *string `bun:"school_id"`
	SchoolName    *string `bun:"school_name"`
	Year          *int    `bun:"year"`
	WeightClass   *string `bun:"weight_class"`
	Seed          *int    `bun:"seed"`
	IsWinner      *bool   `bun:"is_winner"`
	Score         *int    `bun:"score"`
	ResultType    *string `bun:"result_type"`
	FallTime      *string `bun:"fall_time"`
	NextMatchID   *string `bun:"next_match_id"`
}

// MatchRow is a flat scan target for a match joined with its tournament.
type MatchRow struct {
	MatchID        string  `bun:"match_id"`
	Round          *string `bun:"round"`
	RoundOrder     *int    `bun:"round_order"`
	BracketOrder   *int    `bun:"bracket_order"`
	ResultType     *string `bun:"result_type"`
	FallTime       *string `bun:"fall_time"`
	TournamentID   *string `bun:"tournament_id"`
	TournamentName *string `bun:"tournament_name"`
	TournamentYear *int    `bun:"tournament_year"`
	WeightClass    *string `bun:"weight_class"`
}

// ParticipationRow is a participation joined with its role and school.
type ParticipationRow struct {
	ParticipantID  string  `bun:"participant_id"`
	RoleID         string  `bun:"role_id"`
	RoleType       string  `bun:"role_type"`
	SchoolID       *string `bun:"school_id"`
	SchoolName     *string `bun:"school_name"`
	SchoolLocation *string `bun:"school_location"`
	Year           *int    `bun:"year"`
	WeightClass    *string `bun:"weight_class"`
	Seed           *int    `bun:"seed"`
}

// WrestlerCandidateRow is a search candidate with its latest participation.
type WrestlerCandidateRow struct {
	PersonID        string  `bun:"person_id"`
	FirstName       string  `bun:"first_name"`
	LastName        string  `bun:"last_name"`
	LastSchool      *string `bun:"last_school"`
	LastYear        *int    `bun:"last_year"`
	LastWeightClass *string `bun:"last_weight_class"`
}

// SuggestionRow holds a distinct text and how many rows carry it.
type SuggestionRow struct {
	Text  string `bun:"text"`
	Count int    `bun:"count"`
}

// JoinName joins non-empty name parts with a single space.
func JoinName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
