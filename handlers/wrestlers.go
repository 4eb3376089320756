package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// WrestlerProfile returns a person with roles and participations.
func (h *Handler) WrestlerProfile(c echo.Context) error {
	p, err := h.svc.GetWrestlerProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

// WrestlerStats returns career statistics.
func (h *Handler) WrestlerStats(c echo.Context) error {
	st, err := h.svc.GetWrestlerStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

// WrestlerMatches returns a page of the match history.
func (h *Handler) WrestlerMatches(c echo.Context) error {
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}
	offset, err := intParam(c, "offset")
	if err != nil {
		return err
	}

	page, err := h.svc.GetWrestlerMatches(c.Request().Context(), c.Param("id"), limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}
