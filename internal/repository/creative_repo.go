package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

type CreativeActivityRepository interface {
	Create(ctx context.Context, activity *model.CreativeActivity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CreativeActivity, error)
	FindAll(ctx context.Context, filter ListFilter) ([]model.CreativeActivity, int64, error)
	Update(ctx context.Context, activity *model.CreativeActivity) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type creativeActivityRepository struct {
	db *gorm.DB
}

func NewCreativeActivityRepository(db *gorm.DB) CreativeActivityRepository {
	return &creativeActivityRepository{db: db}
}

func (r *creativeActivityRepository) Create(ctx context.Context, activity *model.CreativeActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *creativeActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CreativeActivity, error) {
	var activity model.CreativeActivity
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("Images").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email", "image")
		}).
		First(&activity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *creativeActivityRepository) FindAll(ctx context.Context, filter ListFilter) ([]model.CreativeActivity, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.CreativeActivity{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SubCategoryID != nil {
		query = query.Where("sub_category_id = ?", *filter.SubCategoryID)
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

	var activities []model.CreativeActivity
	err := query.
		Preload("Category").
		Preload("SubCategory").
		Preload("Images").
		Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (r *creativeActivityRepository) Update(ctx context.Context, activity *model.CreativeActivity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *creativeActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Notification{}, "activity_id = ? AND activity_type = ?", id, model.OwnerCreativeActivity).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Image{}, "owner_id = ? AND owner_type = ?", id, model.OwnerCreativeActivity).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CreativeActivity{}, "id = ?", id).Error
	})
}

func (r *creativeActivityRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CreativeActivity{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}
