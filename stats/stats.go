// Package stats folds classified bouts into per-wrestler and per-school
// statistics. Nothing is cached; every call recomputes from its input.
package stats

import (
	"math"

	"github.com/padraicbc/wrestleapi/outcome"
	"github.com/padraicbc/wrestleapi/rounds"
)

// Bout is one classified match from one side's point of view.
type Bout struct {
	MatchID   string
	PersonID  string
	Year      *int
	Round     string
	RoundRank int
	Outcome   outcome.Outcome
}

// WrestlerStats summarizes a wrestler's career.
type WrestlerStats struct {
	PersonID         string  `json:"personID"`
	MatchCount       int     `json:"matchCount"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Unresolved       int     `json:"unresolved"`
	WinPercentage    float64 `json:"winPercentage"`
	Pins             int     `json:"pins"`
	TechnicalFalls   int     `json:"technicalFalls"`
	MajorDecisions   int     `json:"majorDecisions"`
	Decisions        int     `json:"decisions"`
	AllAmericanCount int     `json:"allAmericanCount"`
	AllAmerican      bool    `json:"allAmerican"`
}

// Aggregate computes WrestlerStats over every bout given.
func Aggregate(personID string, bouts []Bout) WrestlerStats {
	s := WrestlerStats{PersonID: personID, MatchCount: len(bouts)}
	for _, b := range bouts {
		if rounds.IsPlacement(b.RoundRank) {
			s.AllAmericanCount++
		}
		switch b.Outcome.Result {
		case outcome.Win:
			s.Wins++
		case outcome.Loss:
			s.Losses++
			continue
		default:
			s.Unresolved++
			continue
		}
		switch b.Outcome.Method {
		case outcome.MethodFall:
			s.Pins++
		case outcome.MethodTechFall:
			s.TechnicalFalls++
		case outcome.MethodMajorDecision:
			s.MajorDecisions++
		case outcome.MethodDecision:
			s.Decisions++
		}
	}
	s.WinPercentage = Percentage(s.Wins, s.MatchCount)
	s.AllAmerican = s.AllAmericanCount > 0
	return s
}

// SchoolStats summarizes every bout wrestled for a school.
type SchoolStats struct {
	SchoolID       string  `json:"schoolID"`
	TotalWrestlers int     `json:"totalWrestlers"`
	MatchCount     int     `json:"matchCount"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Unresolved     int     `json:"unresolved"`
	YearsActive    int     `json:"yearsActive"`
	FirstYear      *int    `json:"firstYear,omitempty"`
	LastYear       *int    `json:"lastYear,omitempty"`
	WinPercentage  float64 `json:"winPercentage"`
}

// AggregateSchool computes SchoolStats over the bouts of a school's wrestlers.
func AggregateSchool(schoolID string, bouts []Bout) SchoolStats {
	s := SchoolStats{SchoolID: schoolID, MatchCount: len(bouts)}
	people := map[string]struct{}{}
	years := map[int]struct{}{}
	for _, b := range bouts {
		if b.PersonID != "" {
			people[b.PersonID] = struct{}{}
		}
		if b.Year != nil {
			y := *b.Year
			years[y] = struct{}{}
			if s.FirstYear == nil || y < *s.FirstYear {
				s.FirstYear = &y
			}
			if s.LastYear == nil || y > *s.LastYear {
				s.LastYear = &y
			}
		}
		switch b.Outcome.Result {
		case outcome.Win:
			s.Wins++
		case outcome.Loss:
			s.Losses++
		default:
			s.Unresolved++
		}
	}
	s.TotalWrestlers = len(people)
	s.YearsActive = len(years)
	s.WinPercentage = Percentage(s.Wins, s.MatchCount)
	return s
}

// Percentage returns part/total*100 rounded to one decimal, 0 when total is 0.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
