package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Each content kind has its own category table; cross-entity category reuse
// is disallowed by construction.

type TraditionCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *TraditionCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

type EthnicCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *EthnicCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

type CreativeCategory struct {
	ID            uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string                `gorm:"size:100;uniqueIndex;not null" json:"name"`
	SubCategories []CreativeSubCategory `gorm:"foreignKey:CategoryID" json:"subCategories,omitempty"`
	CreatedAt     time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *CreativeCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

type CreativeSubCategory struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string           `gorm:"size:100;not null" json:"name"`
	CategoryID uuid.UUID        `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   CreativeCategory `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *CreativeSubCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
