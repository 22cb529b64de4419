package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"confusion/internal/cache"
	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

// Menu is the document accepted by the seeder.
type Menu struct {
	Dishes     []model.Dish      `json:"dishes"`
	Promotions []model.Promotion `json:"promotions"`
	Leaders    []model.Leader    `json:"leaders"`
}

// SeedResult counts what a seeding run inserted.
type SeedResult struct {
	Dishes     int `json:"dishes"`
	Promotions int `json:"promotions"`
	Leaders    int `json:"leaders"`
	Skipped    int `json:"skipped"`
}

// MenuSeeder loads menu content and bootstraps admin accounts.
type MenuSeeder struct {
	dishes     DishService
	promotions CatalogService[model.Promotion]
	leaders    CatalogService[model.Leader]
	users      repository.UserRepository
	cache      *cache.Client
}

// NewMenuSeeder builds a MenuSeeder on top of the catalog services. The cache
// is the one the user listing reads from; nil disables invalidation.
func NewMenuSeeder(dishes DishService, promotions CatalogService[model.Promotion], leaders CatalogService[model.Leader], users repository.UserRepository, cache *cache.Client) *MenuSeeder {
	return &MenuSeeder{dishes: dishes, promotions: promotions, leaders: leaders, users: users, cache: cache}
}

// Seed inserts every entry of menu. Entries whose name is taken are skipped, so
// running it twice is harmless.
func (s *MenuSeeder) Seed(ctx context.Context, menu Menu) (SeedResult, error) {
	var res SeedResult
	var err error

	if res.Dishes, err = seedAll[model.Dish](ctx, s.dishes, menu.Dishes, &res.Skipped); err != nil {
		return res, fmt.Errorf("seed dishes: %w", err)
	}
	if res.Promotions, err = seedAll[model.Promotion](ctx, s.promotions, menu.Promotions, &res.Skipped); err != nil {
		return res, fmt.Errorf("seed promotions: %w", err)
	}
	if res.Leaders, err = seedAll[model.Leader](ctx, s.leaders, menu.Leaders, &res.Skipped); err != nil {
		return res, fmt.Errorf("seed leaders: %w", err)
	}
	return res, nil
}

func seedAll[T any](ctx context.Context, svc CatalogService[T], items []T, skipped *int) (int, error) {
	created := 0
	for i := range items {
		item := items[i]
		if _, err := svc.Create(ctx, &item); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateName) {
				*skipped++
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// EnsureAdmin creates username as an admin, or promotes it when it already exists.
// An existing user's password is left untouched.
func (s *MenuSeeder) EnsureAdmin(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		if user.Admin {
			return user, nil
		}
		user.Admin = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("promote user: %w", err)
		}
		_ = s.cache.Delete(ctx, usersListKey)
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user = &model.User{ID: uuid.New(), Username: username, PasswordHash: string(hash), Admin: true}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	_ = s.cache.Delete(ctx, usersListKey)
	return user, nil
}
