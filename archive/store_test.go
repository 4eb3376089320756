package archive_test

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/padraicbc/wrestleapi/archive"
	"github.com/padraicbc/wrestleapi/models"
)

// memStore answers Store queries from in-memory tables the same way the
// SQL joins do.
type memStore struct {
	people      map[string]models.Person
	roles       []models.Role
	parts       []models.Participant
	schools     map[string]models.School
	tournaments map[string]models.Tournament
	matches     map[string]models.Match
	bridges     []models.ParticipantMatch

	searchErr error
}

var _ archive.Store = (*memStore)(nil)

func sp(s string) *string { return &s }
func ip(i int) *int       { return &i }
func bp(b bool) *bool     { return &b }

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) role(id string) models.Role {
	for _, r := range m.roles {
		if r.RoleID == id {
			return r
		}
	}
	return models.Role{}
}

func (m *memStore) part(id string) models.Participant {
	for _, p := range m.parts {
		if p.ParticipantID == id {
			return p
		}
	}
	return models.Participant{}
}

func (m *memStore) schoolName(id *string) *string {
	if id == nil {
		return nil
	}
	if s, ok := m.schools[*id]; ok {
		return sp(s.Name)
	}
	return nil
}

func (m *memStore) sideRow(pm models.ParticipantMatch) models.SideRow {
	pt := m.part(pm.ParticipantID)
	per := m.people[m.role(pt.RoleID).PersonID]
	return models.SideRow{
		MatchID:       pm.MatchID,
		ParticipantID: pm.ParticipantID,
		PersonID:      per.PersonID,
		FirstName:     per.FirstName,
		LastName:      per.LastName,
		SchoolID:      pt.SchoolID,
		SchoolName:    m.schoolName(pt.SchoolID),
		Year:          pt.Year,
		WeightClass:   pt.WeightClass,
		Seed:          pt.Seed,
		IsWinner:      pm.IsWinner,
		Score:         pm.Score,
		ResultType:    pm.ResultType,
		FallTime:      pm.FallTime,
		NextMatchID:   pm.NextMatchID,
	}
}

func (m *memStore) sides(keep func(models.SideRow, models.Role) bool) []models.SideRow {
	var out []models.SideRow
	for _, pm := range m.bridges {
		row := m.sideRow(pm)
		if keep(row, m.role(m.part(pm.ParticipantID).RoleID)) {
			out = append(out, row)
		}
	}
	return out
}

func (m *memStore) Person(_ context.Context, id string) (models.Person, error) {
	p, ok := m.people[id]
	if !ok {
		return models.Person{}, fmt.Errorf("person %q: %w", id, archive.ErrNotFound)
	}
	return p, nil
}

func (m *memStore) Roles(_ context.Context, personID string) ([]models.Role, error) {
	var out []models.Role
	for _, r := range m.roles {
		if r.PersonID == personID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Participations(_ context.Context, personID, roleType string) ([]models.ParticipationRow, error) {
	var out []models.ParticipationRow
	for _, p := range m.parts {
		r := m.role(p.RoleID)
		if r.PersonID != personID || roleType != "" && r.RoleType != roleType {
			continue
		}
		row := models.ParticipationRow{
			ParticipantID: p.ParticipantID,
			RoleID:        r.RoleID,
			RoleType:      r.RoleType,
			SchoolID:      p.SchoolID,
			SchoolName:    m.schoolName(p.SchoolID),
			Year:          p.Year,
			WeightClass:   p.WeightClass,
			Seed:          p.Seed,
		}
		if p.SchoolID != nil {
			row.SchoolLocation = m.schools[*p.SchoolID].Location
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *memStore) WrestlerSides(_ context.Context, personID string) ([]models.SideRow, error) {
	return m.sides(func(r models.SideRow, role models.Role) bool {
		return r.PersonID == personID && role.RoleType == models.RoleWrestler
	}), nil
}

func (m *memStore) SchoolSides(_ context.Context, schoolID string) ([]models.SideRow, error) {
	return m.sides(func(r models.SideRow, role models.Role) bool {
		return models.Deref(r.SchoolID) == schoolID && role.RoleType == models.RoleWrestler
	}), nil
}

func (m *memStore) MatchSides(_ context.Context, ids []string) ([]models.SideRow, error) {
	return m.sides(func(r models.SideRow, _ models.Role) bool {
		return slices.Contains(ids, r.MatchID)
	}), nil
}

func (m *memStore) matchRow(mt models.Match) models.MatchRow {
	row := models.MatchRow{
		MatchID:      mt.MatchID,
		Round:        mt.Round,
		RoundOrder:   mt.RoundOrder,
		BracketOrder: mt.BracketOrder,
		ResultType:   mt.ResultType,
		FallTime:     mt.FallTime,
		TournamentID: mt.TournamentID,
	}
	if mt.TournamentID != nil {
		if t, ok := m.tournaments[*mt.TournamentID]; ok {
			row.TournamentName = sp(t.Name)
			row.TournamentYear = t.Year
		}
	}
	for _, pm := range m.bridges {
		if pm.MatchID != mt.MatchID {
			continue
		}
		if w := m.part(pm.ParticipantID).WeightClass; w != nil && (row.WeightClass == nil || *w < *row.WeightClass) {
			row.WeightClass = w
		}
	}
	return row
}

func (m *memStore) Matches(_ context.Context, ids []string) ([]models.MatchRow, error) {
	var out []models.MatchRow
	for _, id := range ids {
		if mt, ok := m.matches[id]; ok {
			out = append(out, m.matchRow(mt))
		}
	}
	return out, nil
}

func (m *memStore) TournamentMatches(_ context.Context, tournamentID, weightClass string) ([]models.MatchRow, error) {
	var out []models.MatchRow
	for _, mt := range m.matches {
		if models.Deref(mt.TournamentID) != tournamentID {
			continue
		}
		row := m.matchRow(mt)
		if weightClass != "" && models.Deref(row.WeightClass) != weightClass {
			continue
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b models.MatchRow) int { return cmp.Compare(a.MatchID, b.MatchID) })
	return out, nil
}

func (m *memStore) School(_ context.Context, id string) (models.School, error) {
	s, ok := m.schools[id]
	if !ok {
		return models.School{}, fmt.Errorf("school %q: %w", id, archive.ErrNotFound)
	}
	return s, nil
}

func (m *memStore) Tournament(_ context.Context, id string) (models.Tournament, error) {
	t, ok := m.tournaments[id]
	if !ok {
		return models.Tournament{}, fmt.Errorf("tournament %q: %w", id, archive.ErrNotFound)
	}
	return t, nil
}

func anyContains(terms []string, texts ...string) bool {
	for _, t := range terms {
		for _, x := range texts {
			if x != "" && strings.Contains(strings.ToLower(x), strings.ToLower(t)) {
				return true
			}
		}
	}
	return false
}

func (m *memStore) SearchWrestlers(_ context.Context, terms []string) ([]models.WrestlerCandidateRow, error) {
	var out []models.WrestlerCandidateRow
	for _, per := range m.people {
		var latest *models.Participant
		wrestler := false
		for i, p := range m.parts {
			r := m.role(p.RoleID)
			if r.PersonID != per.PersonID || r.RoleType != models.RoleWrestler {
				continue
			}
			wrestler = true
			if latest == nil || p.Year != nil && (latest.Year == nil || *p.Year > *latest.Year) {
				latest = &m.parts[i]
			}
		}
		if !wrestler {
			continue
		}
		row := models.WrestlerCandidateRow{PersonID: per.PersonID, FirstName: per.FirstName, LastName: per.LastName}
		if latest != nil {
			row.LastSchool = m.schoolName(latest.SchoolID)
			row.LastYear = latest.Year
			row.LastWeightClass = latest.WeightClass
		}
		if anyContains(terms, per.FirstName, per.LastName, per.FullName(), models.Deref(row.LastSchool)) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memStore) SearchSchools(_ context.Context, terms []string) ([]models.School, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	var out []models.School
	for _, s := range m.schools {
		if anyContains(terms, s.Name, models.Deref(s.Location), models.Deref(s.Mascot)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) SearchTournaments(_ context.Context, terms []string) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, t := range m.tournaments {
		if anyContains(terms, t.Name, models.Deref(t.Location)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) SuggestWrestlers(_ context.Context, term string, limit int) ([]models.SuggestionRow, error) {
	counts := map[string]int{}
	for _, p := range m.parts {
		r := m.role(p.RoleID)
		if r.RoleType != models.RoleWrestler {
			continue
		}
		if name := m.people[r.PersonID].FullName(); anyContains([]string{term}, name) {
			counts[name]++
		}
	}
	return suggestionRows(counts, limit), nil
}

func (m *memStore) SuggestSchools(_ context.Context, term string, limit int) ([]models.SuggestionRow, error) {
	counts := map[string]int{}
	for _, s := range m.schools {
		if !anyContains([]string{term}, s.Name) {
			continue
		}
		counts[s.Name] = 0
		for _, p := range m.parts {
			if models.Deref(p.SchoolID) == s.SchoolID {
				counts[s.Name]++
			}
		}
	}
	return suggestionRows(counts, limit), nil
}

func (m *memStore) SuggestTournaments(_ context.Context, term string, limit int) ([]models.SuggestionRow, error) {
	counts := map[string]int{}
	for _, t := range m.tournaments {
		if anyContains([]string{term}, t.Name) {
			counts[t.Name]++
		}
	}
	return suggestionRows(counts, limit), nil
}

func suggestionRows(counts map[string]int, limit int) []models.SuggestionRow {
	out := make([]models.SuggestionRow, 0, len(counts))
	for text, n := range counts {
		out = append(out, models.SuggestionRow{Text: text, Count: n})
	}
	slices.SortFunc(out, func(a, b models.SuggestionRow) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Text, b.Text)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// fixture is a small NCAA bracket.
//
//	m1 champ 16   Spencer Lee (Iowa) beats Rob Brown (Lee Academy) 20-0
//	m3 champ 8    Spencer Lee beats Tom Gray (Leeward School) by fall
//	m2 1st        Jack Mueller (Penn State) beats Spencer Lee
//	m5 quarter    Pat Solo (Penn State), opposing row missing
//	m6 mystery    Pat Solo beats Jack Mueller 3-1
func fixture() *memStore {
	m := &memStore{
		people: map[string]models.Person{
			"p1": {PersonID: "p1", FirstName: "Spencer", LastName: "Lee"},
			"p2": {PersonID: "p2", FirstName: "Jack", LastName: "Mueller"},
			"p3": {PersonID: "p3", FirstName: "Rob", LastName: "Brown"},
			"p4": {PersonID: "p4", FirstName: "Tom", LastName: "Gray"},
			"p5": {PersonID: "p5", FirstName: "Pat", LastName: "Solo"},
		},
		roles: []models.Role{
			{RoleID: "r1", PersonID: "p1", RoleType: models.RoleWrestler},
			{RoleID: "r1c", PersonID: "p1", RoleType: models.RoleCoach},
			{RoleID: "r2", PersonID: "p2", RoleType: models.RoleWrestler},
			{RoleID: "r3", PersonID: "p3", RoleType: models.RoleWrestler},
			{RoleID: "r4", PersonID: "p4", RoleType: models.RoleWrestler},
			{RoleID: "r5", PersonID: "p5", RoleType: models.RoleWrestler},
		},
		parts: []models.Participant{
			{ParticipantID: "pt1old", RoleID: "r1", SchoolID: sp("iowa"), Year: ip(2018), WeightClass: sp("125")},
			{ParticipantID: "pt1", RoleID: "r1", SchoolID: sp("iowa"), Year: ip(2019), WeightClass: sp("125"), Seed: ip(1)},
			{ParticipantID: "pt1c", RoleID: "r1c", SchoolID: sp("iowa"), Year: ip(2023)},
			{ParticipantID: "pt2", RoleID: "r2", SchoolID: sp("psu"), Year: ip(2019), WeightClass: sp("125"), Seed: ip(2)},
			{ParticipantID: "pt2b", RoleID: "r2", SchoolID: sp("psu"), Year: ip(2019), WeightClass: sp("133")},
			{ParticipantID: "pt3", RoleID: "r3", SchoolID: sp("lee"), Year: ip(2019), WeightClass: sp("125")},
			{ParticipantID: "pt4", RoleID: "r4", SchoolID: sp("leeward"), Year: ip(2019), WeightClass: sp("125")},
			{ParticipantID: "pt5", RoleID: "r5", SchoolID: sp("psu"), Year: ip(2019), WeightClass: sp("133")},
		},
		schools: map[string]models.School{
			"iowa":    {SchoolID: "iowa", Name: "Iowa", Location: sp("Iowa City"), Mascot: sp("Hawkeyes")},
			"psu":     {SchoolID: "psu", Name: "Penn State", Location: sp("State College"), Mascot: sp("Nittany Lions")},
			"lee":     {SchoolID: "lee", Name: "Lee Academy"},
			"leeward": {SchoolID: "leeward", Name: "Leeward School"},
		},
		tournaments: map[string]models.Tournament{
			"t1": {TournamentID: "t1", Name: "NCAA Championships", Year: ip(2019), Location: sp("Pittsburgh")},
		},
		matches: map[string]models.Match{
			"m1": {MatchID: "m1", Round: sp("champ 16"), BracketOrder: ip(1), TournamentID: sp("t1")},
			"m2": {MatchID: "m2", Round: sp("1st"), TournamentID: sp("t1")},
			"m3": {MatchID: "m3", Round: sp("champ 8"), TournamentID: sp("t1")},
			"m5": {MatchID: "m5", Round: sp("quarterfinal"), TournamentID: sp("t1")},
			"m6": {MatchID: "m6", Round: sp("mystery round"), TournamentID: sp("t1")},
		},
		bridges: []models.ParticipantMatch{
			{MatchID: "m1", ParticipantID: "pt1", IsWinner: bp(true), Score: ip(20), NextMatchID: sp("m3")},
			{MatchID: "m1", ParticipantID: "pt3", IsWinner: bp(false), Score: ip(0)},
			{MatchID: "m3", ParticipantID: "pt1", IsWinner: bp(true), ResultType: sp("Fall"), FallTime: sp("2:34"), NextMatchID: sp("m2")},
			{MatchID: "m3", ParticipantID: "pt4", IsWinner: bp(false)},
			{MatchID: "m2", ParticipantID: "pt1", IsWinner: bp(false)},
			{MatchID: "m2", ParticipantID: "pt2", IsWinner: bp(true), NextMatchID: sp("m1")},
			{MatchID: "m5", ParticipantID: "pt5", IsWinner: bp(true)},
			{MatchID: "m6", ParticipantID: "pt5", IsWinner: bp(true), Score: ip(3)},
			{MatchID: "m6", ParticipantID: "pt2b", IsWinner: bp(false), Score: ip(1)},
		},
	}
	return m
}
