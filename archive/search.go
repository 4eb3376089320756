package archive

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/wrestleapi/models"
	"github.com/padraicbc/wrestleapi/search"
)

// SearchRequest is a ranked multi-entity search. Type is empty for every
// entity type.
type SearchRequest struct {
	Query  string
	Type   string
	Offset int
	Limit  int
}

// SearchResponse is one page of the ranked pool. Total is the pool size
// before pagination.
type SearchResponse struct {
	Query   string          `json:"query"`
	Type    string          `json:"type,omitempty"`
	Total   int             `json:"total"`
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
	Results []search.Result `json:"results"`
}

func (s *Service) checkQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < s.limits.MinQueryLength {
		return "", fmt.Errorf("%w: need at least %d characters", ErrQueryTooShort, s.limits.MinQueryLength)
	}
	return q, nil
}

// Search fetches loose candidates for each enabled type concurrently, then
// scores, merges and paginates them.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	q, err := s.checkQuery(req.Query)
	if err != nil {
		return nil, err
	}
	t, ok := search.ParseType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, req.Type)
	}
	limit := clampLimit(req.Limit, s.limits.DefaultLimit, s.limits.MaxLimit)
	offset := max(req.Offset, 0)

	types := search.Types
	if t != "" {
		types = []search.Type{t}
	}
	terms := s.candidateTerms(q)

	found := make([][]search.Candidate, len(types))
	g, gctx := errgroup.WithContext(ctx)
	for i, typ := range types {
		g.Go(func() (err error) {
			found[i], err = s.candidates(gctx, typ, terms)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pool []search.Candidate
	for _, cs := range found {
		pool = append(pool, cs...)
	}
	ranked := search.Rank(q, pool)
	s.metrics.SearchQuery(string(t), len(ranked))

	total, page := search.Paginate(ranked, offset, limit)
	return &SearchResponse{
		Query:   q,
		Type:    string(t),
		Total:   total,
		Offset:  offset,
		Limit:   limit,
		Results: page,
	}, nil
}

// candidateTerms is the whole query plus each of its words long enough to
// pass the minimum query length.
func (s *Service) candidateTerms(q string) []string {
	terms := []string{q}
	for _, tok := range search.Tokens(q) {
		if utf8.RuneCountInString(tok) < s.limits.MinQueryLength {
			continue
		}
		if !strings.EqualFold(tok, q) {
			terms = append(terms, tok)
		}
	}
	return terms
}

func (s *Service) candidates(ctx context.Context, t search.Type, terms []string) ([]search.Candidate, error) {
	switch t {
	case search.TypeWrestler:
		rows, err := s.store.SearchWrestlers(ctx, terms)
		if err != nil {
			return nil, err
		}
		out := make([]search.Candidate, len(rows))
		for i, r := range rows {
			out[i] = wrestlerCandidate(r)
		}
		return out, nil
	case search.TypeSchool:
		rows, err := s.store.SearchSchools(ctx, terms)
		if err != nil {
			return nil, err
		}
		out := make([]search.Candidate, len(rows))
		for i, r := range rows {
			out[i] = schoolCandidate(r)
		}
		return out, nil
	case search.TypeTournament:
		rows, err := s.store.SearchTournaments(ctx, terms)
		if err != nil {
			return nil, err
		}
		out := make([]search.Candidate, len(rows))
		for i, r := range rows {
			out[i] = tournamentCandidate(r)
		}
		return out, nil
	}
	return nil, nil
}

func wrestlerCandidate(r models.WrestlerCandidateRow) search.Candidate {
	name := models.JoinName(r.FirstName, r.LastName)
	school := models.Deref(r.LastSchool)
	meta := map[string]any{}
	var sub []string
	if r.LastSchool != nil {
		meta["school"] = school
		sub = append(sub, school)
	}
	if r.LastWeightClass != nil {
		meta["weightClass"] = *r.LastWeightClass
		sub = append(sub, *r.LastWeightClass)
	}
	if r.LastYear != nil {
		meta["year"] = *r.LastYear
		sub = append(sub, strconv.Itoa(*r.LastYear))
	}
	return search.Candidate{
		Type:     search.TypeWrestler,
		ID:       r.PersonID,
		Title:    name,
		Subtitle: strings.Join(sub, " · "),
		Metadata: meta,
		Fields: []search.Field{
			{Text: name, Weight: search.WeightPrimary},
			{Text: r.FirstName, Weight: search.WeightPrimary},
			{Text: r.LastName, Weight: search.WeightPrimary},
			{Text: school, Weight: search.WeightSchool},
		},
	}
}

func schoolCandidate(r models.School) search.Candidate {
	meta := map[string]any{}
	if r.Location != nil {
		meta["location"] = *r.Location
	}
	if r.Mascot != nil {
		meta["mascot"] = *r.Mascot
	}
	if r.SchoolType != nil {
		meta["schoolType"] = *r.SchoolType
	}
	return search.Candidate{
		Type:     search.TypeSchool,
		ID:       r.SchoolID,
		Title:    r.Name,
		Subtitle: models.Deref(r.Location),
		Metadata: meta,
		Fields: []search.Field{
			{Text: r.Name, Weight: search.WeightPrimary},
			{Text: models.Deref(r.Mascot), Weight: search.WeightMascot},
			{Text: models.Deref(r.Location), Weight: search.WeightLocation},
		},
	}
}

func tournamentCandidate(r models.Tournament) search.Candidate {
	meta := map[string]any{}
	var sub []string
	if r.Year != nil {
		meta["year"] = *r.Year
		sub = append(sub, strconv.Itoa(*r.Year))
	}
	if r.Date != nil {
		meta["date"] = *r.Date
	}
	if r.Location != nil {
		meta["location"] = *r.Location
		sub = append(sub, *r.Location)
	}
	return search.Candidate{
		Type:     search.TypeTournament,
		ID:       r.TournamentID,
		Title:    r.Name,
		Subtitle: strings.Join(sub, " · "),
		Metadata: meta,
		Fields: []search.Field{
			{Text: r.Name, Weight: search.WeightPrimary},
			{Text: models.Deref(r.Location), Weight: search.WeightLocation},
		},
	}
}

// SearchSuggestions returns deduplicated autocomplete texts across every
// entity type.
func (s *Service) SearchSuggestions(ctx context.Context, query string, limit int) ([]search.Suggestion, error) {
	q, err := s.checkQuery(query)
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, s.limits.SuggestDefaultLimit, s.limits.MaxLimit)

	fetch := map[search.Type]func(context.Context, string, int) ([]models.SuggestionRow, error){
		search.TypeWrestler:   s.store.SuggestWrestlers,
		search.TypeSchool:     s.store.SuggestSchools,
		search.TypeTournament: s.store.SuggestTournaments,
	}
	found := make([][]models.SuggestionRow, len(search.Types))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range search.Types {
		g.Go(func() (err error) {
			found[i], err = fetch[t](gctx, q, limit)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []search.Suggestion
	for i, rows := range found {
		for _, r := range rows {
			entries = append(entries, search.Suggestion{Text: r.Text, Type: search.Types[i], Count: r.Count})
		}
	}
	return search.RankSuggestions(q, entries, limit), nil
}
