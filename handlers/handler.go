package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/wrestleapi/archive"
	"github.com/padraicbc/wrestleapi/search"
	"github.com/padraicbc/wrestleapi/stats"
)

// Archive is the read service behind the routes.
type Archive interface {
	Ping(ctx context.Context) error
	GetWrestlerProfile(ctx context.Context, id string) (*archive.WrestlerProfile, error)
	GetWrestlerStats(ctx context.Context, id string) (*stats.WrestlerStats, error)
	GetWrestlerMatches(ctx context.Context, id string, limit, offset int) (*archive.MatchPage, error)
	Search(ctx context.Context, req archive.SearchRequest) (*archive.SearchResponse, error)
	SearchSuggestions(ctx context.Context, query string, limit int) ([]search.Suggestion, error)
	GetSchool(ctx context.Context, id string) (*archive.SchoolProfile, error)
	GetSchoolStats(ctx context.Context, id string) (*stats.SchoolStats, error)
	GetTournament(ctx context.Context, id string) (*archive.TournamentDetail, error)
	GetTournamentBracket(ctx context.Context, id, weightClass string) ([]archive.Bracket, error)
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	svc Archive
}

// New creates a Handler over svc.
func New(svc Archive) *Handler {
	return &Handler{svc: svc}
}

// Routes registers every archive route under /api plus the health check.
func (h *Handler) Routes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/wrestlers/:id", h.WrestlerProfile)
	api.GET("/wrestlers/:id/stats", h.WrestlerStats)
	api.GET("/wrestlers/:id/matches", h.WrestlerMatches)
	api.GET("/search", h.Search)
	api.GET("/search/suggestions", h.Suggestions)
	api.GET("/schools/:id", h.School)
	api.GET("/schools/:id/stats", h.SchoolStats)
	api.GET("/tournaments/:id", h.Tournament)
	api.GET("/tournaments/:id/brackets", h.TournamentBrackets)
}

// httpError maps service errors onto status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, archive.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, archive.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// intParam reads an optional non-negative integer query param. Absent
// params are 0.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}

// Health pings the store.
func (h *Handler) Health(c echo.Context) error {
	if err := h.svc.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
