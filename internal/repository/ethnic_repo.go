package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

type EthnicGroupRepository interface {
	Create(ctx context.Context, group *model.EthnicGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EthnicGroup, error)
	FindAll(ctx context.Context, filter ListFilter) ([]model.EthnicGroup, int64, error)
	Update(ctx context.Context, group *model.EthnicGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type ethnicGroupRepository struct {
	db *gorm.DB
}

func NewEthnicGroupRepository(db *gorm.DB) EthnicGroupRepository {
	return &ethnicGroupRepository{db: db}
}

func (r *ethnicGroupRepository) Create(ctx context.Context, group *model.EthnicGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *ethnicGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EthnicGroup, error) {
	var group model.EthnicGroup
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email", "image")
		}).
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *ethnicGroupRepository) FindAll(ctx context.Context, filter ListFilter) ([]model.EthnicGroup, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.EthnicGroup{})

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

	var groups []model.EthnicGroup
	err := query.
		Preload("Category").
		Preload("Images").
		Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&groups).Error
	if err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

func (r *ethnicGroupRepository) Update(ctx context.Context, group *model.EthnicGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *ethnicGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Notification{}, "activity_id = ? AND activity_type = ?", id, model.OwnerEthnicGroup).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Image{}, "owner_id = ? AND owner_type = ?", id, model.OwnerEthnicGroup).Error; err != nil {
			return err
		}
		return tx.Delete(&model.EthnicGroup{}, "id = ?", id).Error
	})
}

func (r *ethnicGroupRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.EthnicGroup{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}
