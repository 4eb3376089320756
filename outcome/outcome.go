// Package outcome classifies one wrestler's side of a match into a result,
// a method of victory and an opponent identity.
package outcome

import (
	"fmt"
	"strings"

	"github.com/padraicbc/wrestleapi/models"
)

// Result of a match from one side's point of view.
type Result string

const (
	Win     Result = "W"
	Loss    Result = "L"
	Unknown Result = "unknown"
)

// Method of victory.
type Method string

const (
	MethodFall             Method = "fall"
	MethodTechFall         Method = "technical-fall"
	MethodMajorDecision    Method = "major-decision"
	MethodDecision         Method = "decision"
	MethodForfeit          Method = "forfeit"
	MethodDisqualification Method = "disqualification"
	MethodInjuryDefault    Method = "injury-default"
	MethodUnknown          Method = "unknown"
)

// Defect names why a result could not be resolved.
type Defect string

const (
	DefectNone              Defect = ""
	DefectMissingOpponent   Defect = "missing_opponent"
	DefectMissingWinnerFlag Defect = "missing_winner_flag"
	DefectConflictingWinner Defect = "conflicting_winner"
)

// UnknownOpponent is shown when the other bridge row cannot be found.
const UnknownOpponent = "Unknown"

// Margin thresholds for score-derived methods.
const (
	techFallMargin = 15
	majorMargin    = 8
)

// Side is one bridge row as the classifier sees it.
type Side struct {
	MatchID       string
	ParticipantID string
	PersonID      string
	Name          string
	School        string
	IsWinner      *bool
	Score         *int
	ResultType    string
	FallTime      string
	Match         MatchInfo
}

// MatchInfo is the result label and fall time stored on the match itself.
// Older rows carry them there instead of on the bridge rows.
type MatchInfo struct {
	ResultType string
	FallTime   string
}

// MatchInfoFromRow builds a MatchInfo from a match row.
func MatchInfoFromRow(r models.MatchRow) MatchInfo {
	return MatchInfo{ResultType: models.Deref(r.ResultType), FallTime: models.Deref(r.FallTime)}
}

// SideFromRow builds a Side from a store row.
func SideFromRow(r models.SideRow) Side {
	return Side{
		MatchID:       r.MatchID,
		ParticipantID: r.ParticipantID,
		PersonID:      r.PersonID,
		Name:          models.JoinName(r.FirstName, r.LastName),
		School:        models.Deref(r.SchoolName),
		IsWinner:      r.IsWinner,
		Score:         r.Score,
		ResultType:    models.Deref(r.ResultType),
		FallTime:      models.Deref(r.FallTime),
	}
}

// Opponent identifies the other side of a match.
type Opponent struct {
	PersonID string `json:"personID,omitempty"`
	Name     string `json:"name"`
	School   string `json:"school,omitempty"`
}

// Outcome is the classified view of one side of a match.
type Outcome struct {
	Result        Result
	Method        Method
	ScoreDisplay  string
	SelfScore     *int
	OpponentScore *int
	Opponent      Opponent
	Defect        Defect
}

// Resolved reports whether the result is a win or a loss.
func (o Outcome) Resolved() bool {
	return o.Result == Win || o.Result == Loss
}

// Classify derives the outcome of self against opp. opp is nil when the
// other bridge row is missing.
func Classify(self Side, opp *Side) Outcome {
	out := Outcome{
		Result:    Unknown,
		SelfScore: self.Score,
		Opponent:  Opponent{Name: UnknownOpponent},
	}
	if opp != nil {
		out.OpponentScore = opp.Score
		out.Opponent = Opponent{PersonID: opp.PersonID, Name: opp.Name, School: opp.School}
		if out.Opponent.Name == "" {
			out.Opponent.Name = UnknownOpponent
		}
	}

	out.Result, out.Defect = resolveResult(self, opp)
	out.Method = resolveMethod(self, opp)
	out.ScoreDisplay = scoreDisplay(self, opp, out.Method)
	return out
}

func resolveResult(self Side, opp *Side) (Result, Defect) {
	switch {
	case opp == nil:
		return Unknown, DefectMissingOpponent
	case self.IsWinner == nil:
		return Unknown, DefectMissingWinnerFlag
	case *self.IsWinner && opp.IsWinner != nil && *opp.IsWinner:
		return Unknown, DefectConflictingWinner
	case *self.IsWinner:
		return Win, DefectNone
	default:
		return Loss, DefectNone
	}
}

func resolveMethod(self Side, opp *Side) Method {
	if m := NormalizeMethod(self.ResultType); m != MethodUnknown {
		return m
	}
	if opp != nil {
		if m := NormalizeMethod(opp.ResultType); m != MethodUnknown {
			return m
		}
	}
	if m := NormalizeMethod(self.Match.ResultType); m != MethodUnknown {
		return m
	}
	if opp == nil || self.Score == nil || opp.Score == nil {
		return MethodUnknown
	}
	flagged := isTrue(self.IsWinner) || isTrue(opp.IsWinner)
	return MethodFromMargin(*self.Score, *opp.Score, flagged)
}

// MethodFromMargin derives a method from the two scores. A zero margin is a
// decision only when a winner flag is set.
func MethodFromMargin(selfScore, oppScore int, winnerFlagged bool) Method {
	margin := selfScore - oppScore
	if margin < 0 {
		margin = -margin
	}
	switch {
	case margin >= techFallMargin:
		return MethodTechFall
	case margin >= majorMargin:
		return MethodMajorDecision
	case margin >= 1:
		return MethodDecision
	case winnerFlagged:
		return MethodDecision
	default:
		return MethodUnknown
	}
}

var methodLabels = map[string]Method{
	"fall":             MethodFall,
	"pin":              MethodFall,
	"f":                MethodFall,
	"tech fall":        MethodTechFall,
	"technical fall":   MethodTechFall,
	"techfall":         MethodTechFall,
	"tf":               MethodTechFall,
	"major dec":        MethodMajorDecision,
	"major decision":   MethodMajorDecision,
	"md":               MethodMajorDecision,
	"dec":              MethodDecision,
	"decision":         MethodDecision,
	"d":                MethodDecision,
	"forfeit":          MethodForfeit,
	"fft":              MethodForfeit,
	"ff":               MethodForfeit,
	"mfft":             MethodForfeit,
	"medical forfeit":  MethodForfeit,
	"disqualification": MethodDisqualification,
	"dq":               MethodDisqualification,
	"injury default":   MethodInjuryDefault,
	"inj":              MethodInjuryDefault,
	"injury":           MethodInjuryDefault,
}

// NormalizeMethod maps an explicit result-type label to a Method.
func NormalizeMethod(label string) Method {
	s := strings.ToLower(label)
	s = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	if m, ok := methodLabels[s]; ok {
		return m
	}
	return MethodUnknown
}

func scoreDisplay(self Side, opp *Side, m Method) string {
	fall := strings.TrimSpace(self.FallTime)
	if fall == "" && opp != nil {
		fall = strings.TrimSpace(opp.FallTime)
	}
	if fall == "" {
		fall = strings.TrimSpace(self.Match.FallTime)
	}
	if m == MethodFall && fall != "" {
		return fall
	}
	if opp != nil && self.Score != nil && opp.Score != nil {
		return fmt.Sprintf("%d-%d", *self.Score, *opp.Score)
	}
	if fall != "" {
		return fall
	}
	return "-"
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
