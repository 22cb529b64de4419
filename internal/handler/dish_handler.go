package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "confusion/internal/errors"
	"confusion/internal/middleware"
	"confusion/internal/model"
	"confusion/internal/service"
)

// DishHandler handles dish and comment endpoints.
type DishHandler struct {
	*CatalogHandler[model.Dish]
	dishService service.DishService
}

// NewDishHandler creates a new dish handler.
func NewDishHandler(dishService service.DishService) *DishHandler {
	catalog := NewCatalogHandler[model.Dish](dishService, "dishId", apperrors.ErrDishNotFound)
	// comments are only ever written through the comment endpoints
	catalog.sanitize = func(d *model.Dish) { d.Comments = nil }
	return &DishHandler{CatalogHandler: catalog, dishService: dishService}
}

// CommentRequest is the body of a new comment. Any author field is ignored.
type CommentRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// CommentPatchRequest carries the comment fields to change.
type CommentPatchRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// Comments godoc
// @Summary List the comments of a dish
// @Tags comments
// @Produce json
// @Param dishId path string true "Dish ID"
// @Success 200 {array} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /dishes/{dishId}/comments [get]
func (h *DishHandler) Comments(c echo.Context) error {
	dishID, err := pathID(c, "dishId", apperrors.ErrDishNotFound)
	if err != nil {
		return err
	}
	comments, err := h.dishService.Comments(c.Request().Context(), dishID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// AddComment godoc
// @Summary Comment on a dish
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dishId path string true "Dish ID"
// @Param request body CommentRequest true "Comment"
// @Success 200 {object} model.Dish
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dishes/{dishId}/comments [post]
func (h *DishHandler) AddComment(c echo.Context) error {
	dishID, err := pathID(c, "dishId", apperrors.ErrDishNotFound)
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author := middleware.IdentityFrom(c).ID
	dish, err := h.dishService.AddComment(c.Request().Context(), dishID,
		service.CommentInput{Rating: req.Rating, Text: req.Comment}, author)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

// DeleteAllComments godoc
// @Summary Remove every comment of a dish
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param dishId path string true "Dish ID"
// @Success 200 {object} model.Dish
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dishes/{dishId}/comments [delete]
func (h *DishHandler) DeleteAllComments(c echo.Context) error {
	dishID, err := pathID(c, "dishId", apperrors.ErrDishNotFound)
	if err != nil {
		return err
	}
	dish, err := h.dishService.DeleteAllComments(c.Request().Context(), dishID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

// Comment godoc
// @Summary Get one comment
// @Tags comments
// @Produce json
// @Param dishId path string true "Dish ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /dishes/{dishId}/comments/{commentId} [get]
func (h *DishHandler) Comment(c echo.Context) error {
	dishID, err := pathID(c, "dishId", apperrors.ErrDishNotFound)
	if err != nil {
		return err
	}
	comment, err := h.dishService.Comment(c.Request().Context(), dishID, commentIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// UpdateComment godoc
// @Summary Edit your comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dishId path string true "Dish ID"
// @Param commentId path string true "Comment ID"
// @Param request body CommentPatchRequest true "Fields to change"
// @Success 200 {object} model.Dish
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dishes/{dishId}/comments/{commentId} [put]
func (h *DishHandler) UpdateComment(c echo.Context) error {
	dishID, commentID, err := h.commentPath(c)
	if err != nil {
		return err
	}
	var req CommentPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author := middleware.IdentityFrom(c).ID
	dish, err := h.dishService.UpdateComment(c.Request().Context(), dishID, commentID,
		service.CommentPatch{Rating: req.Rating, Text: req.Comment}, author)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

// DeleteComment godoc
// @Summary Delete your comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param dishId path string true "Dish ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} model.Dish
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dishes/{dishId}/comments/{commentId} [delete]
func (h *DishHandler) DeleteComment(c echo.Context) error {
	dishID, commentID, err := h.commentPath(c)
	if err != nil {
		return err
	}
	author := middleware.IdentityFrom(c).ID
	dish, err := h.dishService.DeleteComment(c.Request().Context(), dishID, commentID, author)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

func (h *DishHandler) commentPath(c echo.Context) (dishID, commentID uuid.UUID, err error) {
	dishID, err = pathID(c, "dishId", apperrors.ErrDishNotFound)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return dishID, commentIDParam(c), nil
}

// commentIDParam yields uuid.Nil for a malformed id. No comment carries that id,
// so the service still reports a missing dish before a missing comment.
func commentIDParam(c echo.Context) uuid.UUID {
	id, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		return uuid.Nil
	}
	return id
}
