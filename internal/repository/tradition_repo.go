package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

type TraditionRepository interface {
	Create(ctx context.Context, tradition *model.Tradition) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tradition, error)
	FindAll(ctx context.Context, filter ListFilter) ([]model.Tradition, int64, error)
	Update(ctx context.Context, tradition *model.Tradition) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type traditionRepository struct {
	db *gorm.DB
}

func NewTraditionRepository(db *gorm.DB) TraditionRepository {
	return &traditionRepository{db: db}
}

func (r *traditionRepository) Create(ctx context.Context, tradition *model.Tradition) error {
	return r.db.WithContext(ctx).Create(tradition).Error
}

func (r *traditionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tradition, error) {
	var tradition model.Tradition
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email", "image")
		}).
		First(&tradition, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tradition, nil
}

func (r *traditionRepository) FindAll(ctx context.Context, filter ListFilter) ([]model.Tradition, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Tradition{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Province != "" {
		query = query.Where("province = ?", filter.Province)
	}
	if filter.Year != 0 {
		query = query.Where("start_year = ?", filter.Year)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var traditions []model.Tradition
	err := query.
		Preload("Category").
		Preload("Images").
		Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&traditions).Error
	if err != nil {
		return nil, 0, err
	}

	return traditions, total, nil
}

func (r *traditionRepository) Update(ctx context.Context, tradition *model.Tradition) error {
	return r.db.WithContext(ctx).Save(tradition).Error
}

// Delete removes the row together with its dependent notification and image
// rows in one transaction. File unlinks are the caller's concern.
func (r *traditionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Notification{}, "activity_id = ? AND activity_type = ?", id, model.OwnerTradition).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Image{}, "owner_id = ? AND owner_type = ?", id, model.OwnerTradition).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tradition{}, "id = ?", id).Error
	})
}

// IncrementViewCount is a single SQL increment; concurrent calls cannot lose
// updates.
func (r *traditionRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Tradition{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}
