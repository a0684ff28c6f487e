package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EthnicGroup struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Category            EthnicCategory `gorm:"constraint:OnDelete:RESTRICT" json:"category"`
	Name                string         `gorm:"size:255;not null" json:"name"`
	Location            `gorm:"embedded"`
	History             string    `gorm:"type:text;not null" json:"history"`
	ActivityName        string    `gorm:"size:255;not null" json:"activity_name"`
	ActivityOrigin      string    `gorm:"type:text;not null" json:"activity_origin"`
	ActivityDetails     string    `gorm:"type:text;not null" json:"activity_details"`
	AlcoholFreeApproach string    `gorm:"type:text;not null" json:"alcohol_free_approach"`
	Results             *string   `gorm:"type:text" json:"results,omitempty"`
	StartYear           int       `gorm:"not null;index" json:"start_year"`
	VideoLink           *string   `gorm:"type:text" json:"video_link,omitempty"`
	FileURL             *string   `gorm:"type:text" json:"file_url,omitempty"`
	ViewCount           int       `gorm:"default:0" json:"view_count"`
	Images              []Image   `gorm:"polymorphic:Owner;polymorphicValue:ethnic_group" json:"images,omitempty"`
	UserID              uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User                User      `gorm:"constraint:OnDelete:RESTRICT" json:"user"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *EthnicGroup) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}
