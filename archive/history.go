package archive

import (
	"cmp"
	"context"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/wrestleapi/models"
	"github.com/padraicbc/wrestleapi/outcome"
	"github.com/padraicbc/wrestleapi/rounds"
	"github.com/padraicbc/wrestleapi/stats"
)

// record is one side of one match after round ranking and classification.
type record struct {
	side  models.SideRow
	match models.MatchRow
	round string
	rank  int
	year  *int
	out   outcome.Outcome
}

func (r record) bout() stats.Bout {
	return stats.Bout{
		MatchID:   r.side.MatchID,
		PersonID:  r.side.PersonID,
		Year:      r.year,
		Round:     r.round,
		RoundRank: r.rank,
		Outcome:   r.out,
	}
}

func bouts(recs []record) []stats.Bout {
	out := make([]stats.Bout, len(recs))
	for i, r := range recs {
		out[i] = r.bout()
	}
	return out
}

// classifyAll loads the matches and opposing sides of own and classifies
// every one of them. A defective match only degrades its own record.
func (s *Service) classifyAll(ctx context.Context, own []models.SideRow) ([]record, error) {
	own = dedupeSides(own)
	if len(own) == 0 {
		return nil, nil
	}
	ids := matchIDs(own)

	var (
		matches []models.MatchRow
		all     []models.SideRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		matches, err = s.store.Matches(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		all, err = s.store.MatchSides(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]models.MatchRow, len(matches))
	for _, m := range matches {
		byID[m.MatchID] = m
	}
	arena := outcome.NewArena(toSides(append(all, own...)))

	recs := make([]record, 0, len(own))
	for _, row := range own {
		m := byID[row.MatchID]
		self := outcome.SideFromRow(row)
		self.Match = outcome.MatchInfoFromRow(m)
		r := record{
			side:  row,
			match: m,
			round: models.Deref(m.Round),
			year:  m.TournamentYear,
			out:   arena.ClassifyIn(self),
		}
		if r.year == nil {
			r.year = row.Year
		}
		r.rank = s.rank(row.MatchID, r.round)
		if r.out.Defect != outcome.DefectNone {
			s.defect("outcome", string(r.out.Defect),
				zap.String("match_id", row.MatchID), zap.String("person_id", row.PersonID))
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// rank canonicalizes a round label. Labels that fall through every rule
// are logged once per match.
func (s *Service) rank(matchID, label string) int {
	r, ok := rounds.Lookup(label)
	if !ok {
		s.defect("rounds", "unranked", zap.String("match_id", matchID), zap.String("label", label))
	}
	return r
}

// sortChronological orders records by year (unknown last), canonical
// round, then match id.
func sortChronological(recs []record) {
	slices.SortStableFunc(recs, func(a, b record) int {
		if c := compareOptional(a.year, b.year); c != 0 {
			return c
		}
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		if c := cmp.Compare(a.round, b.round); c != 0 {
			return c
		}
		return cmp.Compare(a.side.MatchID, b.side.MatchID)
	})
}

// compareOptional orders ascending with nil last.
func compareOptional(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}

func dedupeSides(rows []models.SideRow) []models.SideRow {
	type key struct{ match, participant string }
	seen := make(map[key]struct{}, len(rows))
	out := make([]models.SideRow, 0, len(rows))
	for _, r := range rows {
		k := key{r.MatchID, r.ParticipantID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

func matchIDs(rows []models.SideRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.MatchID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func toSides(rows []models.SideRow) []outcome.Side {
	out := make([]outcome.Side, len(rows))
	for i, r := range rows {
		out[i] = outcome.SideFromRow(r)
	}
	return out
}
