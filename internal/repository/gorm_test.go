package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"confusion/internal/db"
	"confusion/internal/model"
)

// newSQLiteDB opens a throwaway database with the production schema.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "menu.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB, false))
	return gormDB
}

func commentIDs(d *model.Dish) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d.Comments))
	for _, c := range d.Comments {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestDishRepository_UpdateRewritesComments(t *testing.T) {
	ctx := context.Background()
	repo := NewDishRepository(newSQLiteDB(t))
	author, added := uuid.New(), uuid.New()

	tests := []struct {
		name string
		// edit receives the stored comments and returns the sequence to save
		edit func(cs []model.Comment) []model.Comment
		want func(cs []model.Comment) []uuid.UUID
	}{
		{
			name: "reorder",
			edit: func(cs []model.Comment) []model.Comment { return []model.Comment{cs[2], cs[0], cs[1]} },
			want: func(cs []model.Comment) []uuid.UUID { return []uuid.UUID{cs[2].ID, cs[0].ID, cs[1].ID} },
		},
		{
			name: "remove middle",
			edit: func(cs []model.Comment) []model.Comment { return []model.Comment{cs[0], cs[2]} },
			want: func(cs []model.Comment) []uuid.UUID { return []uuid.UUID{cs[0].ID, cs[2].ID} },
		},
		{
			name: "remove all",
			edit: func(cs []model.Comment) []model.Comment { return nil },
			want: func(cs []model.Comment) []uuid.UUID { return []uuid.UUID{} },
		},
		{
			name: "append",
			edit: func(cs []model.Comment) []model.Comment {
				return append(cs, model.Comment{ID: added, Rating: 2, Text: "cold", AuthorID: author})
			},
			want: func(cs []model.Comment) []uuid.UUID {
				return []uuid.UUID{cs[0].ID, cs[1].ID, cs[2].ID, added}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dish := &model.Dish{
				Name:        tt.name,
				Description: "desc",
				Image:       "images/x.png",
				Category:    "mains",
				Price:       decimal.RequireFromString("4.99"),
				Comments: []model.Comment{
					{ID: uuid.New(), Rating: 5, Text: "first", AuthorID: author},
					{ID: uuid.New(), Rating: 4, Text: "second", AuthorID: author},
					{ID: uuid.New(), Rating: 3, Text: "third", AuthorID: author},
				},
			}
			require.NoError(t, repo.Create(ctx, dish))

			stored, err := repo.FindByID(ctx, dish.ID)
			require.NoError(t, err)
			require.Len(t, stored.Comments, 3)
			original := append([]model.Comment(nil), stored.Comments...)

			stored.Comments = tt.edit(stored.Comments)
			stored.Label = "Hot"
			require.NoError(t, repo.Update(ctx, stored))

			reloaded, err := repo.FindByID(ctx, dish.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want(original), commentIDs(reloaded))
			assert.Equal(t, "Hot", reloaded.Label)
			assert.True(t, decimal.RequireFromString("4.99").Equal(reloaded.Price))
		})
	}

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(tests)), deleted)
}

func TestFavoritesRepository_UpdateRewritesEntries(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoritesRepository(newSQLiteDB(t))
	d1, d2, d3 := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name string
		save []uuid.UUID
	}{
		{"reorder", []uuid.UUID{d3, d1, d2}},
		{"remove one", []uuid.UUID{d3, d2}},
		{"remove all", []uuid.UUID{}},
		{"add back", []uuid.UUID{d1}},
	}

	userID := uuid.New()
	favorites := &model.Favorites{UserID: userID, Dishes: []model.FavoriteDish{{DishID: d1}, {DishID: d2}, {DishID: d3}}}
	require.NoError(t, repo.Create(ctx, favorites))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := repo.FindByUser(ctx, userID)
			require.NoError(t, err)

			stored.Dishes = stored.Dishes[:0]
			for _, id := range tt.save {
				stored.Dishes = append(stored.Dishes, model.FavoriteDish{DishID: id})
			}
			require.NoError(t, repo.Update(ctx, stored))

			reloaded, err := repo.FindByUser(ctx, userID)
			require.NoError(t, err)
			assert.Equal(t, favorites.ID, reloaded.ID)
			assert.Equal(t, tt.save, reloaded.DishIDs())
		})
	}

	deleted, err := repo.DeleteByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	_, err = repo.FindByUser(ctx, userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err = repo.DeleteByUser(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
