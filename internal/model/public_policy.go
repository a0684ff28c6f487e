package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PolicyLevel string

const (
	LevelNational     PolicyLevel = "NATIONAL"
	LevelHealthRegion PolicyLevel = "HEALTH_REGION"
	LevelProvincial   PolicyLevel = "PROVINCIAL"
	LevelDistrict     PolicyLevel = "DISTRICT"
	LevelSubDistrict  PolicyLevel = "SUB_DISTRICT"
	LevelVillage      PolicyLevel = "VILLAGE"
)

func (l PolicyLevel) Valid() bool {
	switch l {
	case LevelNational, LevelHealthRegion, LevelProvincial, LevelDistrict, LevelSubDistrict, LevelVillage:
		return true
	}
	return false
}

// PublicPolicy is the only content kind keyed by a signing date instead of
// a Buddhist-era start year; year filters convert at the boundary.
type PublicPolicy struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string      `gorm:"size:255;not null" json:"name"`
	SigningDate   time.Time   `gorm:"not null;index" json:"signing_date"`
	Level         PolicyLevel `gorm:"size:30;not null;index" json:"level"`
	Location      `gorm:"embedded"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Summary       string    `gorm:"type:text;not null" json:"summary"`
	Results       *string   `gorm:"type:text" json:"results,omitempty"`
	VideoLink     *string   `gorm:"type:text" json:"video_link,omitempty"`
	PolicyFileURL *string   `gorm:"type:text" json:"policy_file_url,omitempty"`
	ViewCount     int       `gorm:"default:0" json:"view_count"`
	Images        []Image   `gorm:"polymorphic:Owner;polymorphicValue:public_policy" json:"images,omitempty"`
	UserID        uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User          User      `gorm:"constraint:OnDelete:RESTRICT" json:"user"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PublicPolicy) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
