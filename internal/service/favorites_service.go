package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

// FavoritesService manages the per-user favorites list.
type FavoritesService interface {
	// Get returns the user's list with dish details, or nil when the user has none.
	Get(ctx context.Context, userID uuid.UUID) (*model.Favorites, error)
	AddMany(ctx context.Context, userID uuid.UUID, dishIDs []uuid.UUID) (*model.Favorites, error)
	AddOne(ctx context.Context, userID, dishID uuid.UUID) (*model.Favorites, error)
	RemoveOne(ctx context.Context, userID, dishID uuid.UUID) (*model.Favorites, error)
	RemoveAll(ctx context.Context, userID uuid.UUID) (model.RemovalSummary, error)
}

type favoritesService struct {
	favorites repository.FavoritesRepository
	dishes    repository.DishRepository
}

// NewFavoritesService builds a FavoritesService.
func NewFavoritesService(favorites repository.FavoritesRepository, dishes repository.DishRepository) FavoritesService {
	return &favoritesService{favorites: favorites, dishes: dishes}
}

func (s *favoritesService) Get(ctx context.Context, userID uuid.UUID) (*model.Favorites, error) {
	fav, err := s.find(ctx, userID)
	if err != nil || fav == nil {
		return nil, err
	}
	return s.populate(ctx, fav)
}

// AddMany appends the ids not already present, creating the list on first use.
func (s *favoritesService) AddMany(ctx context.Context, userID uuid.UUID, dishIDs []uuid.UUID) (*model.Favorites, error) {
	return s.mutate(ctx, userID, func(fav *model.Favorites) error {
		for _, id := range dishIDs {
			if !fav.Contains(id) {
				fav.Dishes = append(fav.Dishes, model.FavoriteDish{DishID: id})
			}
		}
		return nil
	})
}

// AddOne appends a single dish and rejects one that is already present.
func (s *favoritesService) AddOne(ctx context.Context, userID, dishID uuid.UUID) (*model.Favorites, error) {
	return s.mutate(ctx, userID, func(fav *model.Favorites) error {
		if fav.Contains(dishID) {
			return apperrors.ErrDuplicateFavorite
		}
		fav.Dishes = append(fav.Dishes, model.FavoriteDish{DishID: dishID})
		return nil
	})
}

// RemoveOne drops every occurrence of dishID.
func (s *favoritesService) RemoveOne(ctx context.Context, userID, dishID uuid.UUID) (*model.Favorites, error) {
	fav, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fav == nil {
		return nil, apperrors.ErrFavoritesNotFound
	}

	for i := len(fav.Dishes) - 1; i >= 0; i-- {
		if fav.Dishes[i].DishID == dishID {
			fav.Dishes = append(fav.Dishes[:i], fav.Dishes[i+1:]...)
		}
	}
	if err := s.favorites.Update(ctx, fav); err != nil {
		return nil, fmt.Errorf("update favorites: %w", err)
	}
	return s.populate(ctx, fav)
}

func (s *favoritesService) RemoveAll(ctx context.Context, userID uuid.UUID) (model.RemovalSummary, error) {
	n, err := s.favorites.DeleteByUser(ctx, userID)
	if err != nil {
		return model.RemovalSummary{}, fmt.Errorf("delete favorites: %w", err)
	}
	return model.Removed(n), nil
}

func (s *favoritesService) find(ctx context.Context, userID uuid.UUID) (*model.Favorites, error) {
	fav, err := s.favorites.FindByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find favorites: %w", err)
	}
	return fav, nil
}

// mutate applies change to the user's list, creating it when missing. A concurrent
// first write for the same user is retried once against the list that won.
func (s *favoritesService) mutate(ctx context.Context, userID uuid.UUID, change func(*model.Favorites) error) (*model.Favorites, error) {
	for attempt := 0; ; attempt++ {
		fav, err := s.find(ctx, userID)
		if err != nil {
			return nil, err
		}

		if fav != nil {
			if err := change(fav); err != nil {
				return nil, err
			}
			if err := s.favorites.Update(ctx, fav); err != nil {
				return nil, fmt.Errorf("update favorites: %w", err)
			}
			return s.populate(ctx, fav)
		}

		fav = &model.Favorites{UserID: userID}
		if err := change(fav); err != nil {
			return nil, err
		}
		err = s.favorites.Create(ctx, fav)
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 0 {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create favorites: %w", err)
		}
		return s.populate(ctx, fav)
	}
}

// populate fills DishDetails in list order; ids of deleted dishes are skipped.
func (s *favoritesService) populate(ctx context.Context, fav *model.Favorites) (*model.Favorites, error) {
	dishes, err := s.dishes.FindByIDs(ctx, fav.DishIDs())
	if err != nil {
		return nil, fmt.Errorf("load favorite dishes: %w", err)
	}
	byID := make(map[uuid.UUID]model.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}
	fav.DishDetails = make([]model.Dish, 0, len(fav.Dishes))
	for _, entry := range fav.Dishes {
		if d, ok := byID[entry.DishID]; ok {
			fav.DishDetails = append(fav.DishDetails, d)
		}
	}
	return fav, nil
}
