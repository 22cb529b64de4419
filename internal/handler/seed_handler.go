package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"confusion/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	seeder *service.MenuSeeder
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seeder *service.MenuSeeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// SeedMenu godoc
// @Summary Load a menu document
// @Description Inserts dishes, promotions and leaders. Entries whose name already exists are skipped.
// @Tags seed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.Menu true "Menu document"
// @Success 200 {object} service.SeedResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /seed [post]
func (h *SeedHandler) SeedMenu(c echo.Context) error {
	var menu service.Menu
	if err := bindBody(c, &menu); err != nil {
		return err
	}
	for i := range menu.Dishes {
		if err := c.Validate(&menu.Dishes[i]); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	for i := range menu.Promotions {
		if err := c.Validate(&menu.Promotions[i]); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	for i := range menu.Leaders {
		if err := c.Validate(&menu.Leaders[i]); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	result, err := h.seeder.Seed(c.Request().Context(), menu)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
