package archive

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/padraicbc/wrestleapi/bracket"
	"github.com/padraicbc/wrestleapi/models"
	"github.com/padraicbc/wrestleapi/outcome"
)

// WeightClassSummary counts the matches of one weight class.
type WeightClassSummary struct {
	WeightClass string `json:"weightClass"`
	MatchCount  int    `json:"matchCount"`
}

// TournamentDetail is a tournament with its weight classes.
type TournamentDetail struct {
	models.Tournament
	MatchCount    int                  `json:"matchCount"`
	WeightClasses []WeightClassSummary `json:"weightClasses"`
}

// BracketSide is one wrestler in a bracket match.
type BracketSide struct {
	ParticipantID string         `json:"participantID"`
	PersonID      string         `json:"personID"`
	Name          string         `json:"name"`
	School        string         `json:"school,omitempty"`
	Seed          *int           `json:"seed,omitempty"`
	Score         *int           `json:"score,omitempty"`
	Result        outcome.Result `json:"result"`
	Method        outcome.Method `json:"method"`
}

// BracketMatch is a match placed in its weight-class bracket. Depth counts
// the matches on the longest chain feeding into it. RoundOrder is the stored
// hint, shown as is and never used for ordering.
type BracketMatch struct {
	MatchID      string         `json:"matchID"`
	Round        string         `json:"round"`
	RoundRank    int            `json:"roundRank"`
	RoundOrder   *int           `json:"roundOrder,omitempty"`
	BracketOrder *int           `json:"bracketOrder,omitempty"`
	Depth        int            `json:"depth"`
	NextMatchIDs []string       `json:"nextMatchIDs"`
	FeedMatchIDs []string       `json:"feedMatchIDs"`
	Sides        []BracketSide  `json:"sides"`
	Defect       outcome.Defect `json:"defect,omitempty"`
}

// ProgressionDefect is a next-match link left out of the bracket, either
// because it would close a cycle or because it leads out of the weight class.
type ProgressionDefect struct {
	MatchID     string `json:"matchID"`
	NextMatchID string `json:"nextMatchID"`
	Reason      string `json:"reason"`
}

// Bracket is the ordered match list of one weight class.
type Bracket struct {
	WeightClass string              `json:"weightClass"`
	Stages      int                 `json:"stages"`
	Matches     []BracketMatch      `json:"matches"`
	Defects     []ProgressionDefect `json:"defects"`
}

// GetTournament returns the tournament with per weight class match counts.
func (s *Service) GetTournament(ctx context.Context, id string) (*TournamentDetail, error) {
	t, err := s.store.Tournament(ctx, id)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.TournamentMatches(ctx, id, "")
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, m := range matches {
		counts[models.Deref(m.WeightClass)]++
	}
	d := &TournamentDetail{Tournament: t, MatchCount: len(matches), WeightClasses: []WeightClassSummary{}}
	for _, w := range sortedWeightClasses(counts) {
		d.WeightClasses = append(d.WeightClasses, WeightClassSummary{WeightClass: w, MatchCount: counts[w]})
	}
	return d, nil
}

// GetTournamentBracket groups a tournament's matches by weight class and
// orders each group by canonical round, label and bracket position. An
// empty weightClass returns every class.
func (s *Service) GetTournamentBracket(ctx context.Context, id, weightClass string) ([]Bracket, error) {
	if _, err := s.store.Tournament(ctx, id); err != nil {
		return nil, err
	}
	matches, err := s.store.TournamentMatches(ctx, id, weightClass)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.MatchID
	}
	sides, err := s.store.MatchSides(ctx, ids)
	if err != nil {
		return nil, err
	}
	arena := outcome.NewArena(toSides(sides))

	next := map[string][]string{}
	for _, r := range dedupeSides(sides) {
		if n := models.Deref(r.NextMatchID); n != "" && !slices.Contains(next[r.MatchID], n) {
			next[r.MatchID] = append(next[r.MatchID], n)
		}
	}
	seeds := map[string]*int{}
	for _, r := range sides {
		seeds[r.ParticipantID] = r.Seed
	}

	groups := map[string][]models.MatchRow{}
	counts := map[string]int{}
	for _, m := range matches {
		w := models.Deref(m.WeightClass)
		groups[w] = append(groups[w], m)
		counts[w]++
	}

	out := make([]Bracket, 0, len(groups))
	for _, w := range sortedWeightClasses(counts) {
		b, err := s.buildBracket(w, groups[w], arena, next, seeds)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Service) buildBracket(w string, matches []models.MatchRow, arena *outcome.Arena,
	next map[string][]string, seeds map[string]*int) (Bracket, error) {
	ids := make([]string, len(matches))
	var links []bracket.Link
	for i, m := range matches {
		ids[i] = m.MatchID
		for _, n := range next[m.MatchID] {
			links = append(links, bracket.Link{Match: m.MatchID, Next: n})
		}
	}
	prog, err := bracket.Build(ids, links)
	if err != nil {
		return Bracket{}, err
	}

	b := Bracket{WeightClass: w, Stages: prog.Stages(), Defects: []ProgressionDefect{}}
	for _, l := range prog.Rejected {
		b.Defects = append(b.Defects, ProgressionDefect{MatchID: l.Match, NextMatchID: l.Next, Reason: "cycle"})
		s.defect("bracket", "cycle",
			zap.String("match_id", l.Match), zap.String("next_match_id", l.Next), zap.String("weight_class", w))
	}
	for _, l := range prog.Outside {
		b.Defects = append(b.Defects, ProgressionDefect{MatchID: l.Match, NextMatchID: l.Next, Reason: "outside_bracket"})
		s.defect("bracket", "outside_bracket",
			zap.String("match_id", l.Match), zap.String("next_match_id", l.Next), zap.String("weight_class", w))
	}

	b.Matches = make([]BracketMatch, 0, len(matches))
	for _, m := range matches {
		round := models.Deref(m.Round)
		bm := BracketMatch{
			MatchID:      m.MatchID,
			Round:        round,
			RoundRank:    s.rank(m.MatchID, round),
			RoundOrder:   m.RoundOrder,
			BracketOrder: m.BracketOrder,
			Depth:        prog.Depth(m.MatchID),
			NextMatchIDs: append([]string{}, next[m.MatchID]...),
			FeedMatchIDs: append([]string{}, prog.Feeds(m.MatchID)...),
			Sides:        []BracketSide{},
		}
		slices.Sort(bm.NextMatchIDs)
		info := outcome.MatchInfoFromRow(m)
		for _, side := range arena.Sides(m.MatchID) {
			side.Match = info
			o := arena.ClassifyIn(side)
			bm.Sides = append(bm.Sides, BracketSide{
				ParticipantID: side.ParticipantID,
				PersonID:      side.PersonID,
				Name:          side.Name,
				School:        side.School,
				Seed:          seeds[side.ParticipantID],
				Score:         side.Score,
				Result:        o.Result,
				Method:        o.Method,
			})
			if bm.Defect == outcome.DefectNone {
				bm.Defect = o.Defect
			}
		}
		if len(bm.Sides) == 0 {
			bm.Defect = outcome.DefectMissingOpponent
		}
		if bm.Defect != outcome.DefectNone {
			s.defect("outcome", string(bm.Defect), zap.String("match_id", m.MatchID))
		}
		b.Matches = append(b.Matches, bm)
	}
	slices.SortStableFunc(b.Matches, compareBracketMatch)
	return b, nil
}

func compareBracketMatch(a, b BracketMatch) int {
	if c := cmp.Compare(a.RoundRank, b.RoundRank); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Round, b.Round); c != 0 {
		return c
	}
	if c := compareOptional(a.BracketOrder, b.BracketOrder); c != 0 {
		return c
	}
	return cmp.Compare(a.MatchID, b.MatchID)
}

func sortedWeightClasses(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for w := range counts {
		out = append(out, w)
	}
	slices.SortFunc(out, compareWeightClass)
	return out
}

// compareWeightClass puts numeric classes first in numeric order, then the
// rest ("HWT", "") by text.
func compareWeightClass(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}
