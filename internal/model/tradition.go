package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tradition struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"category_id"`
	Category            TraditionCategory `gorm:"constraint:OnDelete:RESTRICT" json:"category"`
	Name                string            `gorm:"size:255;not null" json:"name"`
	Location            `gorm:"embedded"`
	Coordinator         *string   `gorm:"size:255" json:"coordinator,omitempty"`
	Phone               *string   `gorm:"size:50" json:"phone,omitempty"`
	History             string    `gorm:"type:text;not null" json:"history"`
	AlcoholFreeApproach string    `gorm:"type:text;not null" json:"alcohol_free_approach"`
	Results             *string   `gorm:"type:text" json:"results,omitempty"`
	StartYear           int       `gorm:"not null;index" json:"start_year"`
	ReportFileURL       *string   `gorm:"type:text" json:"report_file_url,omitempty"`
	ViewCount           int       `gorm:"default:0" json:"view_count"`
	Images              []Image   `gorm:"polymorphic:Owner;polymorphicValue:tradition" json:"images,omitempty"`
	UserID              uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User                User      `gorm:"constraint:OnDelete:RESTRICT" json:"user"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Tradition) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}
