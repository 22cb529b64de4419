package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

type favoritesFixture struct {
	svc    FavoritesService
	user   uuid.UUID
	dishA  uuid.UUID
	dishB  uuid.UUID
	favors *repository.MemoryFavoritesRepository
}

func newFavoritesFixture(t *testing.T) favoritesFixture {
	t.Helper()
	ctx := context.Background()
	dishes := repository.NewMemoryDishRepository()
	a := newDish("Uthappizza")
	b := newDish("Zucchipakoda")
	require.NoError(t, dishes.Create(ctx, a))
	require.NoError(t, dishes.Create(ctx, b))

	favors := repository.NewMemoryFavoritesRepository()
	return favoritesFixture{
		svc:    NewFavoritesService(favors, dishes),
		user:   uuid.New(),
		dishA:  a.ID,
		dishB:  b.ID,
		favors: favors,
	}
}

func TestFavoritesService_GetWithoutList(t *testing.T) {
	f := newFavoritesFixture(t)

	fav, err := f.svc.Get(context.Background(), f.user)
	require.NoError(t, err)
	assert.Nil(t, fav)
}

func TestFavoritesService_AddManyCreatesAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	f := newFavoritesFixture(t)

	fav, err := f.svc.AddMany(ctx, f.user, []uuid.UUID{f.dishA, f.dishA})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.dishA}, fav.DishIDs())

	fav, err = f.svc.AddMany(ctx, f.user, []uuid.UUID{f.dishA, f.dishB})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.dishA, f.dishB}, fav.DishIDs())

	require.Len(t, fav.DishDetails, 2)
	assert.Equal(t, "Uthappizza", fav.DishDetails[0].Name)
	assert.Equal(t, "Zucchipakoda", fav.DishDetails[1].Name)
}

func TestFavoritesService_AddOneRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newFavoritesFixture(t)

	_, err := f.svc.AddOne(ctx, f.user, f.dishA)
	require.NoError(t, err)

	_, err = f.svc.AddOne(ctx, f.user, f.dishA)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateFavorite)

	fav, err := f.svc.Get(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.dishA}, fav.DishIDs())
}

func TestFavoritesService_RemoveOneDropsEveryOccurrence(t *testing.T) {
	ctx := context.Background()
	f := newFavoritesFixture(t)

	// duplicates can only come from data written outside the service
	require.NoError(t, f.favors.Create(ctx, &model.Favorites{
		UserID: f.user,
		Dishes: []model.FavoriteDish{{DishID: f.dishA}, {DishID: f.dishB}, {DishID: f.dishA}},
	}))

	fav, err := f.svc.RemoveOne(ctx, f.user, f.dishA)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.dishB}, fav.DishIDs())

	_, err = f.svc.RemoveOne(ctx, uuid.New(), f.dishA)
	assert.ErrorIs(t, err, apperrors.ErrFavoritesNotFound)
}

func TestFavoritesService_RemoveAll(t *testing.T) {
	ctx := context.Background()
	f := newFavoritesFixture(t)

	_, err := f.svc.AddOne(ctx, f.user, f.dishA)
	require.NoError(t, err)

	summary, err := f.svc.RemoveAll(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, model.Removed(1), summary)

	summary, err = f.svc.RemoveAll(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, model.Removed(0), summary)
}

func TestFavoritesService_SkipsDeletedDishes(t *testing.T) {
	ctx := context.Background()
	f := newFavoritesFixture(t)
	gone := uuid.New()

	fav, err := f.svc.AddMany(ctx, f.user, []uuid.UUID{gone, f.dishB})
	require.NoError(t, err)
	assert.Len(t, fav.Dishes, 2)
	require.Len(t, fav.DishDetails, 1)
	assert.Equal(t, f.dishB, fav.DishDetails[0].ID)
}
