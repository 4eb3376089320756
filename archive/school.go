package archive

import (
	"cmp"
	"context"
	"slices"

	"github.com/padraicbc/wrestleapi/models"
	"github.com/padraicbc/wrestleapi/stats"
)

// RosterEntry is a wrestler who competed for a school.
type RosterEntry struct {
	PersonID      string   `json:"personID"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Years         []int    `json:"years"`
	WeightClasses []string `json:"weightClasses"`
}

// SchoolProfile is a school with the wrestlers who competed for it.
type SchoolProfile struct {
	models.School
	Roster []RosterEntry `json:"roster"`
}

// GetSchool returns the school and its roster.
func (s *Service) GetSchool(ctx context.Context, id string) (*SchoolProfile, error) {
	sc, err := s.store.School(ctx, id)
	if err != nil {
		return nil, err
	}
	sides, err := s.store.SchoolSides(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SchoolProfile{School: sc, Roster: roster(sides)}, nil
}

func roster(sides []models.SideRow) []RosterEntry {
	byPerson := map[string]*RosterEntry{}
	for _, r := range sides {
		e, ok := byPerson[r.PersonID]
		if !ok {
			e = &RosterEntry{PersonID: r.PersonID, FirstName: r.FirstName, LastName: r.LastName,
				Years: []int{}, WeightClasses: []string{}}
			byPerson[r.PersonID] = e
		}
		if r.Year != nil && !slices.Contains(e.Years, *r.Year) {
			e.Years = append(e.Years, *r.Year)
		}
		if w := models.Deref(r.WeightClass); w != "" && !slices.Contains(e.WeightClasses, w) {
			e.WeightClasses = append(e.WeightClasses, w)
		}
	}

	out := make([]RosterEntry, 0, len(byPerson))
	for _, e := range byPerson {
		slices.Sort(e.Years)
		slices.SortFunc(e.WeightClasses, compareWeightClass)
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b RosterEntry) int {
		if c := cmp.Compare(a.LastName, b.LastName); c != 0 {
			return c
		}
		if c := cmp.Compare(a.FirstName, b.FirstName); c != 0 {
			return c
		}
		return cmp.Compare(a.PersonID, b.PersonID)
	})
	return out
}

// GetSchoolStats aggregates every match wrestled for the school.
func (s *Service) GetSchoolStats(ctx context.Context, id string) (*stats.SchoolStats, error) {
	if _, err := s.store.School(ctx, id); err != nil {
		return nil, err
	}
	sides, err := s.store.SchoolSides(ctx, id)
	if err != nil {
		return nil, err
	}
	recs, err := s.classifyAll(ctx, sides)
	if err != nil {
		return nil, err
	}
	st := stats.AggregateSchool(id, bouts(recs))
	return &st, nil
}
