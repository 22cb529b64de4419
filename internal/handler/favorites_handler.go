package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "confusion/internal/errors"
	"confusion/internal/middleware"
	"confusion/internal/service"
)

// FavoritesHandler handles the caller's favorites list.
type FavoritesHandler struct {
	favoritesService service.FavoritesService
}

// NewFavoritesHandler creates a new favorites handler.
func NewFavoritesHandler(favoritesService service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// favoriteRef accepts either a bare id string or an object carrying _id or id.
type favoriteRef struct {
	ID uuid.UUID
}

func (r *favoriteRef) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var obj struct {
			MongoID string `json:"_id"`
			ID      string `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		raw = obj.MongoID
		if raw == "" {
			raw = obj.ID
		}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// GetFavorites godoc
// @Summary Get your favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Favorites
// @Failure 401 {object} errors.ErrorResponse
// @Router /favorites [get]
func (h *FavoritesHandler) GetFavorites(c echo.Context) error {
	fav, err := h.favoritesService.Get(c.Request().Context(), middleware.IdentityFrom(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fav)
}

// AddFavorites godoc
// @Summary Add dishes to your favorites
// @Description The body must be a JSON array of dish ids, or of objects carrying _id. Dishes already present are skipped.
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []string true "Dish ids"
// @Success 200 {object} model.Favorites
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /favorites [post]
func (h *FavoritesHandler) AddFavorites(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	var refs []favoriteRef
	if err := json.Unmarshal(body, &refs); err != nil || refs == nil {
		return apperrors.ErrInvalidFavorites
	}
	ids := make([]uuid.UUID, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}

	fav, err := h.favoritesService.AddMany(c.Request().Context(), middleware.IdentityFrom(c).ID, ids)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fav)
}

// RemoveFavorites godoc
// @Summary Delete your favorites list
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.RemovalSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /favorites [delete]
func (h *FavoritesHandler) RemoveFavorites(c echo.Context) error {
	summary, err := h.favoritesService.RemoveAll(c.Request().Context(), middleware.IdentityFrom(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// AddFavorite godoc
// @Summary Add one dish to your favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param dishId path string true "Dish ID"
// @Success 200 {object} model.Favorites
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /favorites/{dishId} [post]
func (h *FavoritesHandler) AddFavorite(c echo.Context) error {
	dishID, err := pathID(c, "dishId", apperrors.ErrDishNotFound)
	if err != nil {
		return err
	}
	fav, err := h.favoritesService.AddOne(c.Request().Context(), middleware.IdentityFrom(c).ID, dishID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fav)
}

// RemoveFavorite godoc
// @Summary Remove one dish from your favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param dishId path string true "Dish ID"
// @Success 200 {object} model.Favorites
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /favorites/{dishId} [delete]
func (h *FavoritesHandler) RemoveFavorite(c echo.Context) error {
	dishID, err := pathID(c, "dishId", apperrors.ErrDishNotFound)
	if err != nil {
		return err
	}
	fav, err := h.favoritesService.RemoveOne(c.Request().Context(), middleware.IdentityFrom(c).ID, dishID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fav)
}
