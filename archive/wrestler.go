package archive

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/wrestleapi/models"
	"github.com/padraicbc/wrestleapi/outcome"
	"github.com/padraicbc/wrestleapi/search"
	"github.com/padraicbc/wrestleapi/stats"
)

// Participation is one season at one school in one role.
type Participation struct {
	ParticipantID  string  `json:"participantID"`
	RoleType       string  `json:"roleType"`
	SchoolID       *string `json:"schoolID,omitempty"`
	SchoolName     *string `json:"schoolName,omitempty"`
	SchoolLocation *string `json:"schoolLocation,omitempty"`
	Year           *int    `json:"year,omitempty"`
	WeightClass    *string `json:"weightClass,omitempty"`
	Seed           *int    `json:"seed,omitempty"`
}

// WrestlerProfile is a person with every role and participation. Current
// is the wrestling participation with the greatest year.
type WrestlerProfile struct {
	PersonID       string          `json:"personID"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	FullName       string          `json:"fullName"`
	SearchName     *string         `json:"searchName,omitempty"`
	DateOfBirth    *string         `json:"dateOfBirth,omitempty"`
	CityOfOrigin   *string         `json:"cityOfOrigin,omitempty"`
	StateOfOrigin  *string         `json:"stateOfOrigin,omitempty"`
	Roles          []string        `json:"roles"`
	Current        *Participation  `json:"current,omitempty"`
	Participations []Participation `json:"participations"`
}

// MatchEntry is one match from the wrestler's side.
type MatchEntry struct {
	MatchID        string           `json:"matchID"`
	TournamentID   *string          `json:"tournamentID,omitempty"`
	TournamentName *string          `json:"tournamentName,omitempty"`
	Year           *int             `json:"year,omitempty"`
	WeightClass    *string          `json:"weightClass,omitempty"`
	School         *string          `json:"school,omitempty"`
	Round          string           `json:"round"`
	RoundRank      int              `json:"roundRank"`
	Result         outcome.Result   `json:"result"`
	Method         outcome.Method   `json:"method"`
	Score          string           `json:"score"`
	Opponent       outcome.Opponent `json:"opponent"`
	Defect         outcome.Defect   `json:"defect,omitempty"`
}

// MatchPage is a window of a wrestler's match history.
type MatchPage struct {
	PersonID string       `json:"personID"`
	Total    int          `json:"total"`
	Offset   int          `json:"offset"`
	Limit    int          `json:"limit"`
	Matches  []MatchEntry `json:"matches"`
}

// GetWrestlerProfile returns the person behind id with roles and
// participations.
func (s *Service) GetWrestlerProfile(ctx context.Context, id string) (*WrestlerProfile, error) {
	p, err := s.store.Person(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		roles []models.Role
		parts []models.ParticipationRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		roles, err = s.store.Roles(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		parts, err = s.store.Participations(gctx, id, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prof := &WrestlerProfile{
		PersonID:       p.PersonID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		FullName:       p.FullName(),
		SearchName:     p.SearchName,
		DateOfBirth:    p.DateOfBirth,
		CityOfOrigin:   p.CityOfOrigin,
		StateOfOrigin:  p.StateOfOrigin,
		Roles:          make([]string, 0, len(roles)),
		Participations: make([]Participation, 0, len(parts)),
	}
	for _, r := range roles {
		if !slices.Contains(prof.Roles, r.RoleType) {
			prof.Roles = append(prof.Roles, r.RoleType)
		}
	}
	slices.Sort(prof.Roles)

	for _, pr := range parts {
		prof.Participations = append(prof.Participations, Participation{
			ParticipantID:  pr.ParticipantID,
			RoleType:       pr.RoleType,
			SchoolID:       pr.SchoolID,
			SchoolName:     pr.SchoolName,
			SchoolLocation: pr.SchoolLocation,
			Year:           pr.Year,
			WeightClass:    pr.WeightClass,
			Seed:           pr.Seed,
		})
	}
	slices.SortStableFunc(prof.Participations, func(a, b Participation) int {
		if c := compareOptional(a.Year, b.Year); c != 0 {
			if a.Year == nil || b.Year == nil {
				return c
			}
			return -c
		}
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})
	prof.Current = current(prof.Participations)
	return prof, nil
}

// current picks the wrestling participation with the greatest year,
// falling back to any role when the person never wrestled.
func current(parts []Participation) *Participation {
	pick := func(wrestlerOnly bool) *Participation {
		var best *Participation
		for i := range parts {
			p := &parts[i]
			if wrestlerOnly && p.RoleType != models.RoleWrestler {
				continue
			}
			if best == nil || newer(p.Year, best.Year) {
				best = p
			}
		}
		return best
	}
	best := pick(true)
	if best == nil {
		best = pick(false)
	}
	if best == nil {
		return nil
	}
	c := *best
	return &c
}

func newer(a, b *int) bool {
	return a != nil && (b == nil || *a > *b)
}

// GetWrestlerStats aggregates every match of the wrestler.
func (s *Service) GetWrestlerStats(ctx context.Context, id string) (*stats.WrestlerStats, error) {
	recs, err := s.wrestlerRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	st := stats.Aggregate(id, bouts(recs))
	return &st, nil
}

// GetWrestlerMatches returns the wrestler's matches in chronological and
// canonical round order, paginated.
func (s *Service) GetWrestlerMatches(ctx context.Context, id string, limit, offset int) (*MatchPage, error) {
	limit = clampLimit(limit, s.limits.MatchesDefaultLimit, s.limits.MatchesMaxLimit)
	offset = max(offset, 0)

	recs, err := s.wrestlerRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	sortChronological(recs)

	entries := make([]MatchEntry, len(recs))
	for i, r := range recs {
		entries[i] = MatchEntry{
			MatchID:        r.side.MatchID,
			TournamentID:   r.match.TournamentID,
			TournamentName: r.match.TournamentName,
			Year:           r.year,
			WeightClass:    firstNonNil(r.side.WeightClass, r.match.WeightClass),
			School:         r.side.SchoolName,
			Round:          r.round,
			RoundRank:      r.rank,
			Result:         r.out.Result,
			Method:         r.out.Method,
			Score:          r.out.ScoreDisplay,
			Opponent:       r.out.Opponent,
			Defect:         r.out.Defect,
		}
	}
	total, page := search.Paginate(entries, offset, limit)
	return &MatchPage{PersonID: id, Total: total, Offset: offset, Limit: limit, Matches: page}, nil
}

func (s *Service) wrestlerRecords(ctx context.Context, id string) ([]record, error) {
	if _, err := s.store.Person(ctx, id); err != nil {
		return nil, err
	}
	own, err := s.store.WrestlerSides(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.classifyAll(ctx, own)
}

func firstNonNil[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
