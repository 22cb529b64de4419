package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorites is the per-user list of favorite dishes. There is at most one per user.
type Favorites struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID      `json:"user" gorm:"type:char(36);not null;uniqueIndex"`
	Dishes    []FavoriteDish `json:"dishes" gorm:"foreignKey:FavoritesID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// DishDetails holds the referenced dishes when the list is read back.
	DishDetails []Dish `json:"dish_details,omitempty" gorm:"-"`
}

// FavoriteDish is one entry of a favorites list.
type FavoriteDish struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	FavoritesID uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Seq         int       `json:"-" gorm:"not null;default:0"`
	DishID      uuid.UUID `json:"id" gorm:"type:char(36);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (f *Favorites) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Contains reports whether dishID is already in the list.
func (f *Favorites) Contains(dishID uuid.UUID) bool {
	for _, d := range f.Dishes {
		if d.DishID == dishID {
			return true
		}
	}
	return false
}

// DishIDs returns the referenced dish ids in list order.
func (f *Favorites) DishIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(f.Dishes))
	for _, d := range f.Dishes {
		ids = append(ids, d.DishID)
	}
	return ids
}
