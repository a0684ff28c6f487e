package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreativeActivity struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"category_id"`
	Category      CreativeCategory    `gorm:"constraint:OnDelete:RESTRICT" json:"category"`
	SubCategoryID uuid.UUID           `gorm:"type:uuid;not null;index" json:"sub_category_id"`
	SubCategory   CreativeSubCategory `gorm:"constraint:OnDelete:RESTRICT" json:"sub_category"`
	Name          string              `gorm:"size:255;not null" json:"name"`
	Location      `gorm:"embedded"`
	Coordinator   *string   `gorm:"size:255" json:"coordinator,omitempty"`
	Phone         *string   `gorm:"size:50" json:"phone,omitempty"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Summary       string    `gorm:"type:text;not null" json:"summary"`
	Results       *string   `gorm:"type:text" json:"results,omitempty"`
	StartYear     int       `gorm:"not null;index" json:"start_year"`
	VideoLink     *string   `gorm:"type:text" json:"video_link,omitempty"`
	ReportFileURL *string   `gorm:"type:text" json:"report_file_url,omitempty"`
	ViewCount     int       `gorm:"default:0" json:"view_count"`
	Images        []Image   `gorm:"polymorphic:Owner;polymorphicValue:creative_activity" json:"images,omitempty"`
	UserID        uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User          User      `gorm:"constraint:OnDelete:RESTRICT" json:"user"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *CreativeActivity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
