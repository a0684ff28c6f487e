package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	FindByIDs(ctx context.Context, ids []uuid.UUID, ownerID uuid.UUID, ownerType string) ([]model.Image, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *model.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// FindByIDs only returns images actually owned by (ownerID, ownerType), so a
// caller cannot detach another entity's images.
func (r *imageRepository) FindByIDs(ctx context.Context, ids []uuid.UUID, ownerID uuid.UUID, ownerType string) ([]model.Image, error) {
	var images []model.Image
	err := r.db.WithContext(ctx).
		Where("id IN ? AND owner_id = ? AND owner_type = ?", ids, ownerID, ownerType).
		Find(&images).Error
	return images, err
}

func (r *imageRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&model.Image{}, "id IN ?", ids).Error
}
