package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Tournament returns a tournament with its weight classes.
func (h *Handler) Tournament(c echo.Context) error {
	t, err := h.svc.GetTournament(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, t)
}

// TournamentBrackets returns the brackets, optionally of one weight class.
func (h *Handler) TournamentBrackets(c echo.Context) error {
	bs, err := h.svc.GetTournamentBracket(c.Request().Context(), c.Param("id"), c.QueryParam("weight_class"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bs)
}
