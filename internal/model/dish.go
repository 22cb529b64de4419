package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dish is a menu item together with its ordered comments.
type Dish struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;uniqueIndex" validate:"required"`
	Description string          `json:"description" gorm:"type:text;not null" validate:"required"`
	Image       string          `json:"image" gorm:"size:255;not null" validate:"required"`
	Category    string          `json:"category" gorm:"size:100;not null;index" validate:"required"`
	Label       string          `json:"label" gorm:"size:100;not null;default:''"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Featured    bool            `json:"featured" gorm:"default:false;index"`
	Comments    []Comment       `json:"comments" gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Comment is a rating left on a dish. It only exists inside its dish.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	DishID    uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Seq       int       `json:"-" gorm:"not null;default:0"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"comment" gorm:"type:text;not null"`
	AuthorID  uuid.UUID `json:"author" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (d *Dish) GetID() uuid.UUID { return d.ID }

func (d *Dish) GetName() string { return d.Name }

// Preserve keeps the id, creation time and comments; comments are only changed
// through the comment operations.
func (d *Dish) Preserve(prev *Dish) {
	d.ID = prev.ID
	d.CreatedAt = prev.CreatedAt
	d.Comments = prev.Comments
}

// CommentIndex returns the position of the comment with the given id, or -1.
func (d *Dish) CommentIndex(id uuid.UUID) int {
	for i := range d.Comments {
		if d.Comments[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate rejects a negative price.
func (d *Dish) Validate() error {
	if d.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
