package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDish_Preserve(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	prev := &Dish{
		ID:        uuid.New(),
		Name:      "Uthappizza",
		CreatedAt: created,
		Comments:  []Comment{{ID: uuid.New(), Rating: 5, Text: "Imagine all the eatables"}},
	}
	next := &Dish{ID: uuid.New(), Name: "Renamed", Comments: nil}

	next.Preserve(prev)

	assert.Equal(t, prev.ID, next.ID)
	assert.Equal(t, created, next.CreatedAt)
	assert.Equal(t, prev.Comments, next.Comments)
	assert.Equal(t, "Renamed", next.Name)
}

func TestDish_CommentIndex(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	d := &Dish{Comments: []Comment{{ID: a}, {ID: b}}}

	assert.Equal(t, 0, d.CommentIndex(a))
	assert.Equal(t, 1, d.CommentIndex(b))
	assert.Equal(t, -1, d.CommentIndex(uuid.New()))
}

func TestValidate_Price(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  error
	}{
		{"zero", "0", nil},
		{"positive", "4.99", nil},
		{"negative", "-0.01", ErrNegativePrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			assert.Equal(t, tt.want, (&Dish{Price: price}).Validate())
			assert.Equal(t, tt.want, (&Promotion{Price: price}).Validate())
		})
	}
}

func TestPromotionAndLeader_Preserve(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	p := &Promotion{Name: "Weekend Grand Buffet"}
	p.Preserve(&Promotion{ID: uuid.New(), CreatedAt: created})
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, created, p.CreatedAt)

	l := &Leader{Name: "Peter Pan"}
	l.Preserve(&Leader{ID: uuid.New(), CreatedAt: created})
	assert.NotEqual(t, uuid.Nil, l.ID)
	assert.Equal(t, created, l.CreatedAt)
}

func TestFavorites_ContainsAndDishIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	f := &Favorites{Dishes: []FavoriteDish{{DishID: a}, {DishID: b}}}

	assert.True(t, f.Contains(a))
	assert.False(t, f.Contains(uuid.New()))
	assert.Equal(t, []uuid.UUID{a, b}, f.DishIDs())
	assert.Empty(t, (&Favorites{}).DishIDs())
}

func TestRemoved(t *testing.T) {
	assert.Equal(t, RemovalSummary{Acknowledged: true, DeletedCount: 3}, Removed(3))
}
