package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

type PublicPolicyRepository interface {
	Create(ctx context.Context, policy *model.PublicPolicy) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PublicPolicy, error)
	FindAll(ctx context.Context, filter ListFilter) ([]model.PublicPolicy, int64, error)
	Update(ctx context.Context, policy *model.PublicPolicy) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type publicPolicyRepository struct {
	db *gorm.DB
}

func NewPublicPolicyRepository(db *gorm.DB) PublicPolicyRepository {
	return &publicPolicyRepository{db: db}
}

func (r *publicPolicyRepository) Create(ctx context.Context, policy *model.PublicPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *publicPolicyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PublicPolicy, error) {
	var policy model.PublicPolicy
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email", "image")
		}).
		First(&policy, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *publicPolicyRepository) FindAll(ctx context.Context, filter ListFilter) ([]model.PublicPolicy, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.PublicPolicy{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Province != "" {
		query = query.Where("province = ?", filter.Province)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var policies []model.PublicPolicy
	err := query.
		Preload("Images").
		Order("signing_date desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&policies).Error
	if err != nil {
		return nil, 0, err
	}

	return policies, total, nil
}

func (r *publicPolicyRepository) Update(ctx context.Context, policy *model.PublicPolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

func (r *publicPolicyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Notification{}, "activity_id = ? AND activity_type = ?", id, model.OwnerPublicPolicy).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Image{}, "owner_id = ? AND owner_type = ?", id, model.OwnerPublicPolicy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PublicPolicy{}, "id = ?", id).Error
	})
}

func (r *publicPolicyRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PublicPolicy{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}
