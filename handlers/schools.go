package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// School returns a school with its roster.
func (h *Handler) School(c echo.Context) error {
	sc, err := h.svc.GetSchool(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sc)
}

// SchoolStats returns aggregate results for a school.
func (h *Handler) SchoolStats(c echo.Context) error {
	st, err := h.svc.GetSchoolStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}
