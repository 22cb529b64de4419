package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"confusion/internal/model"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	alice := &model.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, alice))
	assert.NotEqual(t, uuid.Nil, alice.ID)

	err := repo.Create(ctx, &model.User{Username: "alice"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	found.Admin = true
	require.NoError(t, repo.Update(ctx, found))
	reloaded, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Admin)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryDishRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDishRepository()

	dish := &model.Dish{
		Name:     "Uthappizza",
		Price:    decimal.RequireFromString("4.99"),
		Comments: []model.Comment{{Rating: 5, Text: "Imagine all the eatables"}},
	}
	require.NoError(t, repo.Create(ctx, dish))
	require.NotEqual(t, uuid.Nil, dish.ID)
	require.Len(t, dish.Comments, 1)
	assert.Equal(t, dish.ID, dish.Comments[0].DishID)
	assert.NotEqual(t, uuid.Nil, dish.Comments[0].ID)

	err := repo.Create(ctx, &model.Dish{Name: "Uthappizza"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// mutating the caller's copy must not leak into the store
	dish.Comments[0].Text = "changed"
	stored, err := repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Imagine all the eatables", stored.Comments[0].Text)

	stored.Comments = append(stored.Comments, model.Comment{Rating: 3, Text: "ok"})
	require.NoError(t, repo.Update(ctx, stored))
	reloaded, err := repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Comments, 2)
	assert.Equal(t, 1, reloaded.Comments[1].Seq)

	byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{uuid.New(), dish.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 1)

	n, err := repo.Delete(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Create(ctx, &model.Dish{Name: "Zucchipakoda"}))
	n, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.FindByID(ctx, dish.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryCatalogRepository_UpdateRejectsTakenName(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeaderRepository()

	a := &model.Leader{Name: "Peter Pan"}
	b := &model.Leader{Name: "Dhanasekaran Witherspoon"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	b.Name = "Peter Pan"
	assert.ErrorIs(t, repo.Update(ctx, b), gorm.ErrDuplicatedKey)

	missing := &model.Leader{ID: uuid.New(), Name: "Nobody"}
	assert.ErrorIs(t, repo.Update(ctx, missing), gorm.ErrRecordNotFound)
}

func TestMemoryFavoritesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFavoritesRepository()
	userID := uuid.New()
	dishID := uuid.New()

	_, err := repo.FindByUser(ctx, userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	fav := &model.Favorites{UserID: userID, Dishes: []model.FavoriteDish{{DishID: dishID}}}
	require.NoError(t, repo.Create(ctx, fav))
	assert.ErrorIs(t, repo.Create(ctx, &model.Favorites{UserID: userID}), gorm.ErrDuplicatedKey)

	found, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.True(t, found.Contains(dishID))
	assert.Equal(t, fav.ID, found.Dishes[0].FavoritesID)

	found.Dishes = nil
	require.NoError(t, repo.Update(ctx, found))
	found, err = repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, found.Dishes)

	n, err := repo.DeleteByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.DeleteByUser(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
