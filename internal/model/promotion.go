package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Promotion is a time-limited offer shown on the menu.
type Promotion struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;uniqueIndex" validate:"required"`
	Image       string          `json:"image" gorm:"size:255;not null" validate:"required"`
	Label       string          `json:"label" gorm:"size:100;not null;default:''"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Featured    bool            `json:"featured" gorm:"default:false;index"`
	Description string          `json:"description" gorm:"type:text;not null" validate:"required"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Promotion) GetID() uuid.UUID { return p.ID }

func (p *Promotion) GetName() string { return p.Name }

func (p *Promotion) Preserve(prev *Promotion) {
	p.ID = prev.ID
	p.CreatedAt = prev.CreatedAt
}

// Validate rejects a negative price.
func (p *Promotion) Validate() error {
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
