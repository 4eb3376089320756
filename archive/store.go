package archive

import (
	"context"

	"github.com/padraicbc/wrestleapi/models"
)

// Store is the read-only entity accessor behind the service. Methods that
// fetch a single entity return an error wrapping ErrNotFound when it is
// absent.
type Store interface {
	Ping(ctx context.Context) error

	Person(ctx context.Context, personID string) (models.Person, error)
	Roles(ctx context.Context, personID string) ([]models.Role, error)
	Participations(ctx context.Context, personID, roleType string) ([]models.ParticipationRow, error)

	WrestlerSides(ctx context.Context, personID string) ([]models.SideRow, error)
	SchoolSides(ctx context.Context, schoolID string) ([]models.SideRow, error)
	MatchSides(ctx context.Context, matchIDs []string) ([]models.SideRow, error)
	Matches(ctx context.Context, matchIDs []string) ([]models.MatchRow, error)
	TournamentMatches(ctx context.Context, tournamentID, weightClass string) ([]models.MatchRow, error)

	School(ctx context.Context, schoolID string) (models.School, error)
	Tournament(ctx context.Context, tournamentID string) (models.Tournament, error)

	SearchWrestlers(ctx context.Context, terms []string) ([]models.WrestlerCandidateRow, error)
	SearchSchools(ctx context.Context, terms []string) ([]models.School, error)
	SearchTournaments(ctx context.Context, terms []string) ([]models.Tournament, error)

	SuggestWrestlers(ctx context.Context, term string, limit int) ([]models.SuggestionRow, error)
	SuggestSchools(ctx context.Context, term string, limit int) ([]models.SuggestionRow, error)
	SuggestTournaments(ctx context.Context, term string, limit int) ([]models.SuggestionRow, error)
}
