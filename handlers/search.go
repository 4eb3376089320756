package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/wrestleapi/archive"
)

// Search runs a ranked search over wrestlers, schools and tournaments.
func (h *Handler) Search(c echo.Context) error {
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}
	offset, err := intParam(c, "offset")
	if err != nil {
		return err
	}

	res, err := h.svc.Search(c.Request().Context(), archive.SearchRequest{
		Query:  c.QueryParam("q"),
		Type:   c.QueryParam("type"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Suggestions returns autocomplete texts.
func (h *Handler) Suggestions(c echo.Context) error {
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}

	sugg, err := h.svc.SearchSuggestions(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sugg)
}
