package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner type tags for Image and Notification rows.
const (
	OwnerTradition        = "tradition"
	OwnerPublicPolicy     = "public_policy"
	OwnerEthnicGroup      = "ethnic_group"
	OwnerCreativeActivity = "creative_activity"
)

// Image belongs to exactly one content row, tagged by OwnerType. The
// (OwnerID, OwnerType) pair replaces the four nullable foreign keys of the
// legacy schema.
type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_images_owner" json:"owner_id"`
	OwnerType string    `gorm:"size:50;not null;index:idx_images_owner" json:"owner_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID, err = uuid.NewV7()
	}
	return
}
