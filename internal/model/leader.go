package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Leader is a member of the restaurant's leadership team.
type Leader struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;uniqueIndex" validate:"required"`
	Image       string    `json:"image" gorm:"size:255;not null" validate:"required"`
	Designation string    `json:"designation" gorm:"size:255;not null" validate:"required"`
	Abbr        string    `json:"abbr" gorm:"size:32;not null;default:''"`
	Featured    bool      `json:"featured" gorm:"default:false;index"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Leader) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *Leader) GetID() uuid.UUID { return l.ID }

func (l *Leader) GetName() string { return l.Name }

func (l *Leader) Preserve(prev *Leader) {
	l.ID = prev.ID
	l.CreatedAt = prev.CreatedAt
}
