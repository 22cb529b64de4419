package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/service"
)

// CatalogHandler serves the list/item endpoints shared by dishes, promotions and leaders.
type CatalogHandler[T any] struct {
	svc      service.CatalogService[T]
	param    string
	notFound error
	// sanitize strips fields clients may not set on create.
	sanitize func(*T)
}

// NewCatalogHandler creates a handler whose item routes carry the id in param.
func NewCatalogHandler[T any](svc service.CatalogService[T], param string, notFound error) *CatalogHandler[T] {
	return &CatalogHandler[T]{svc: svc, param: param, notFound: notFound}
}

// NewPromotionHandler serves /promotions.
func NewPromotionHandler(svc service.CatalogService[model.Promotion]) *CatalogHandler[model.Promotion] {
	return NewCatalogHandler[model.Promotion](svc, "promoId", apperrors.ErrPromotionNotFound)
}

// NewLeaderHandler serves /leaders.
func NewLeaderHandler(svc service.CatalogService[model.Leader]) *CatalogHandler[model.Leader] {
	return NewCatalogHandler[model.Leader](svc, "leaderId", apperrors.ErrLeaderNotFound)
}

// List returns every item.
func (h *CatalogHandler[T]) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Create inserts one item.
func (h *CatalogHandler[T]) Create(c echo.Context) error {
	var item T
	if err := bindBody(c, &item); err != nil {
		return err
	}
	if h.sanitize != nil {
		h.sanitize(&item)
	}
	if err := c.Validate(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.svc.Create(c.Request().Context(), &item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// DeleteAll removes every item.
func (h *CatalogHandler[T]) DeleteAll(c echo.Context) error {
	summary, err := h.svc.DeleteAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Get returns one item.
func (h *CatalogHandler[T]) Get(c echo.Context) error {
	id, err := pathID(c, h.param, h.notFound)
	if err != nil {
		return err
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Update merges the fields present in the body into the stored item.
func (h *CatalogHandler[T]) Update(c echo.Context) error {
	id, err := pathID(c, h.param, h.notFound)
	if err != nil {
		return err
	}
	updated, err := h.svc.Update(c.Request().Context(), id, func(item *T) error {
		if err := bindBody(c, item); err != nil {
			return err
		}
		if err := c.Validate(item); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes one item and returns it.
func (h *CatalogHandler[T]) Delete(c echo.Context) error {
	id, err := pathID(c, h.param, h.notFound)
	if err != nil {
		return err
	}
	deleted, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted)
}
