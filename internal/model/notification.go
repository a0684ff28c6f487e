package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification points at a content row via ActivityID + ActivityType (same
// tags as Image.OwnerType).
type Notification struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ActivityID   uuid.UUID `gorm:"type:uuid;not null;index" json:"activity_id"`
	ActivityType string    `gorm:"size:50;not null" json:"activity_type"`
	Message      string    `gorm:"type:text" json:"message"`
	IsRead       bool      `gorm:"default:false" json:"is_read"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
