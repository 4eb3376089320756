package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/padraicbc/wrestleapi/archive"
	"github.com/padraicbc/wrestleapi/models"
)

// Store runs the archive's read queries. Every call is bounded by timeout.
type Store struct {
	db      *bun.DB
	timeout time.Duration
}

var _ archive.Store = (*Store)(nil)

// NewStore wraps db.
func NewStore(db *bun.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", what, id, archive.ErrNotFound)
	}
	return fmt.Errorf("loading %s %q: %w", what, id, err)
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Person loads one person.
func (s *Store) Person(ctx context.Context, personID string) (models.Person, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var p models.Person
	err := s.db.NewSelect().Model(&p).Where("per.person_id = ?", personID).Scan(ctx)
	if err != nil {
		return models.Person{}, notFound(err, "person", personID)
	}
	return p, nil
}

// Roles lists a person's roles.
func (s *Store) Roles(ctx context.Context, personID string) ([]models.Role, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var roles []models.Role
	err := s.db.NewSelect().Model(&roles).
		Where("r.person_id = ?", personID).
		OrderExpr("r.role_type ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roles of %q: %w", personID, err)
	}
	return roles, nil
}

const participationSQL = `
SELECT
	part.participant_id, part.role_id, r.role_type,
	part.school_id, s.name AS school_name, s.location AS school_location,
	part.year, part.weight_class, part.seed
FROM participant part
INNER JOIN role r ON r.role_id = part.role_id
LEFT  JOIN school s ON s.school_id = part.school_id
WHERE r.person_id = ?0 AND (?1 = '' OR r.role_type = ?1)
ORDER BY part.year DESC NULLS LAST, part.participant_id
`

// Participations lists a person's participations, newest year first. An
// empty roleType means every role.
func (s *Store) Participations(ctx context.Context, personID, roleType string) ([]models.ParticipationRow, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var rows []models.ParticipationRow
	if err := s.db.NewRaw(participationSQL, personID, roleType).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("loading participations of %q: %w", personID, err)
	}
	return rows, nil
}

const sideSQL = `
SELECT
	pm.match_id, pm.participant_id, per.person_id, per.first_name, per.last_name,
	part.school_id, s.name AS school_name, part.year, part.weight_class, part.seed,
	pm.is_winner, pm.score, pm.result_type, pm.fall_time, pm.next_match_id
FROM participant_match pm
INNER JOIN participant part ON part.participant_id = pm.participant_id
INNER JOIN role        r    ON r.role_id = part.role_id
INNER JOIN person      per  ON per.person_id = r.person_id
LEFT  JOIN school      s    ON s.school_id = part.school_id
`

func (s *Store) sides(ctx context.Context, where string, args ...any) ([]models.SideRow, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var rows []models.SideRow
	q := sideSQL + where + ` ORDER BY pm.match_id, pm.participant_id`
	if err := s.db.NewRaw(q, args...).Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// WrestlerSides lists every bridge row of the person's wrestler role.
func (s *Store) WrestlerSides(ctx context.Context, personID string) ([]models.SideRow, error) {
	rows, err := s.sides(ctx, `WHERE per.person_id = ? AND r.role_type = ?`, personID, models.RoleWrestler)
	if err != nil {
		return nil, fmt.Errorf("loading matches of %q: %w", personID, err)
	}
	return rows, nil
}

// SchoolSides lists every bridge row of wrestlers who competed for a school.
func (s *Store) SchoolSides(ctx context.Context, schoolID string) ([]models.SideRow, error) {
	rows, err := s.sides(ctx, `WHERE part.school_id = ? AND r.role_type = ?`, schoolID, models.RoleWrestler)
	if err != nil {
		return nil, fmt.Errorf("loading matches of school %q: %w", schoolID, err)
	}
	return rows, nil
}

// MatchSides lists both sides of every given match.
func (s *Store) MatchSides(ctx context.Context, matchIDs []string) ([]models.SideRow, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}
	rows, err := s.sides(ctx, `WHERE pm.match_id IN (?)`, bun.In(matchIDs))
	if err != nil {
		return nil, fmt.Errorf("loading sides of %d matches: %w", len(matchIDs), err)
	}
	return rows, nil
}

const matchSQL = `
SELECT * FROM (
	SELECT
		m.match_id, m.round, m.round_order, m.bracket_order, m.result_type, m.fall_time,
		m.tournament_id, t.name AS tournament_name,
		COALESCE(t.year, EXTRACT(YEAR FROM t.date)::int) AS tournament_year,
		(SELECT MIN(part.weight_class)
			FROM participant_match pm
			INNER JOIN participant part ON part.participant_id = pm.participant_id
			WHERE pm.match_id = m.match_id) AS weight_class
	FROM "match" m
	LEFT JOIN tournament t ON t.tournament_id = m.tournament_id
) mx
`

// Matches loads the given matches with their tournament.
func (s *Store) Matches(ctx context.Context, matchIDs []string) ([]models.MatchRow, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var rows []models.MatchRow
	q := matchSQL + `WHERE mx.match_id IN (?) ORDER BY mx.match_id`
	if err := s.db.NewRaw(q, bun.In(matchIDs)).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("loading %d matches: %w", len(matchIDs), err)
	}
	return rows, nil
}

// TournamentMatches loads a tournament's matches, optionally for one
// weight class only.
func (s *Store) TournamentMatches(ctx context.Context, tournamentID, weightClass string) ([]models.MatchRow, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var rows []models.MatchRow
	q := matchSQL + `WHERE mx.tournament_id = ?0 AND (?1 = '' OR mx.weight_class = ?1) ORDER BY mx.weight_class, mx.match_id`
	if err := s.db.NewRaw(q, tournamentID, weightClass).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("loading matches of tournament %q: %w", tournamentID, err)
	}
	return rows, nil
}

// School loads one school.
func (s *Store) School(ctx context.Context, schoolID string) (models.School, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var sc models.School
	if err := s.db.NewSelect().Model(&sc).Where("s.school_id = ?", schoolID).Scan(ctx); err != nil {
		return models.School{}, notFound(err, "school", schoolID)
	}
	return sc, nil
}

// Tournament loads one tournament.
func (s *Store) Tournament(ctx context.Context, tournamentID string) (models.Tournament, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var t models.Tournament
	if err := s.db.NewSelect().Model(&t).Where("t.tournament_id = ?", tournamentID).Scan(ctx); err != nil {
		return models.Tournament{}, notFound(err, "tournament", tournamentID)
	}
	return t, nil
}

const wrestlerCandidateSQL = `
SELECT
	per.person_id, per.first_name, per.last_name,
	cur.school_name AS last_school, cur.year AS last_year, cur.weight_class AS last_weight_class
FROM person per
LEFT JOIN LATERAL (
	SELECT s.name AS school_name, part.year, part.weight_class
	FROM role r
	INNER JOIN participant part ON part.role_id = r.role_id
	LEFT  JOIN school s ON s.school_id = part.school_id
	WHERE r.person_id = per.person_id AND r.role_type = 'wrestler'
	ORDER BY part.year DESC NULLS LAST
	LIMIT 1
) cur ON true
WHERE EXISTS (SELECT 1 FROM role r WHERE r.person_id = per.person_id AND r.role_type = 'wrestler')
AND (
	per.first_name ILIKE ANY (?0)
	OR per.last_name ILIKE ANY (?0)
	OR (per.first_name || ' ' || per.last_name) ILIKE ANY (?0)
	OR per.search_name ILIKE ANY (?0)
	OR cur.school_name ILIKE ANY (?0)
)
`

// SearchWrestlers returns wrestlers whose name or latest school loosely
// matches any of terms.
func (s *Store) SearchWrestlers(ctx context.Context, terms []string) ([]models.WrestlerCandidateRow, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var rows []models.WrestlerCandidateRow
	if err := s.db.NewRaw(wrestlerCandidateSQL, pgdialect.Array(likePatterns(terms))).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("searching wrestlers: %w", err)
	}
	return rows, nil
}

// SearchSchools returns schools whose name, location or mascot loosely
// matches any of terms.
func (s *Store) SearchSchools(ctx context.Context, terms []string) ([]models.School, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	patterns := pgdialect.Array(likePatterns(terms))
	var schools []models.School
	err := s.db.NewSelect().Model(&schools).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("s.name ILIKE ANY (?)", patterns).
				WhereOr("s.location ILIKE ANY (?)", patterns).
				WhereOr("s.mascot ILIKE ANY (?)", patterns)
		}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching schools: %w", err)
	}
	return schools, nil
}

// SearchTournaments returns tournaments whose name or location loosely
// matches any of terms.
func (s *Store) SearchTournaments(ctx context.Context, terms []string) ([]models.Tournament, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	patterns := pgdialect.Array(likePatterns(terms))
	var ts []models.Tournament
	err := s.db.NewSelect().Model(&ts).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("t.name ILIKE ANY (?)", patterns).
				WhereOr("t.location ILIKE ANY (?)", patterns)
		}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching tournaments: %w", err)
	}
	return ts, nil
}

const (
	suggestWrestlerSQL = `
SELECT per.first_name || ' ' || per.last_name AS text, COUNT(part.participant_id) AS count
FROM person per
INNER JOIN role r ON r.person_id = per.person_id AND r.role_type = 'wrestler'
LEFT  JOIN participant part ON part.role_id = r.role_id
WHERE (per.first_name || ' ' || per.last_name) ILIKE ?0
GROUP BY 1 ORDER BY count DESC, text LIMIT ?1
`
	suggestSchoolSQL = `
SELECT s.name AS text, COUNT(part.participant_id) AS count
FROM school s
LEFT JOIN participant part ON part.school_id = s.school_id
WHERE s.name ILIKE ?0
GROUP BY 1 ORDER BY count DESC, text LIMIT ?1
`
	suggestTournamentSQL = `
SELECT t.name AS text, COUNT(*) AS count
FROM tournament t
WHERE t.name ILIKE ?0
GROUP BY 1 ORDER BY count DESC, text LIMIT ?1
`
)

func (s *Store) suggest(ctx context.Context, q, term string, limit int) ([]models.SuggestionRow, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var rows []models.SuggestionRow
	if err := s.db.NewRaw(q, likePattern(term), limit).Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SuggestWrestlers returns wrestler names containing term with how often
// each appears in participations.
func (s *Store) SuggestWrestlers(ctx context.Context, term string, limit int) ([]models.SuggestionRow, error) {
	rows, err := s.suggest(ctx, suggestWrestlerSQL, term, limit)
	if err != nil {
		return nil, fmt.Errorf("suggesting wrestlers: %w", err)
	}
	return rows, nil
}

// SuggestSchools returns school names containing term.
func (s *Store) SuggestSchools(ctx context.Context, term string, limit int) ([]models.SuggestionRow, error) {
	rows, err := s.suggest(ctx, suggestSchoolSQL, term, limit)
	if err != nil {
		return nil, fmt.Errorf("suggesting schools: %w", err)
	}
	return rows, nil
}

// SuggestTournaments returns tournament names containing term.
func (s *Store) SuggestTournaments(ctx context.Context, term string, limit int) ([]models.SuggestionRow, error) {
	rows, err := s.suggest(ctx, suggestTournamentSQL, term, limit)
	if err != nil {
		return nil, fmt.Errorf("suggesting tournaments: %w", err)
	}
	return rows, nil
}

// RoundLabels lists every distinct round label with its match count.
func (s *Store) RoundLabels(ctx context.Context) ([]models.SuggestionRow, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var rows []models.SuggestionRow
	q := `SELECT COALESCE(m.round, '') AS text, COUNT(*) AS count FROM "match" m GROUP BY 1 ORDER BY 1`
	if err := s.db.NewRaw(q).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("loading round labels: %w", err)
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a case-insensitive contains match.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

func likePatterns(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			out = append(out, likePattern(t))
		}
	}
	return out
}
