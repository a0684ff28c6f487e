package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

// One repository per category family. CountReferences reports how many
// content rows still point at the category; deletion is refused while > 0.

type TraditionCategoryRepository interface {
	Create(ctx context.Context, category *model.TraditionCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TraditionCategory, error)
	FindByName(ctx context.Context, name string) (*model.TraditionCategory, error)
	FindAll(ctx context.Context) ([]model.TraditionCategory, error)
	Update(ctx context.Context, category *model.TraditionCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type traditionCategoryRepository struct {
	db *gorm.DB
}

func NewTraditionCategoryRepository(db *gorm.DB) TraditionCategoryRepository {
	return &traditionCategoryRepository{db: db}
}

func (r *traditionCategoryRepository) Create(ctx context.Context, category *model.TraditionCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *traditionCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TraditionCategory, error) {
	var category model.TraditionCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *traditionCategoryRepository) FindByName(ctx context.Context, name string) (*model.TraditionCategory, error) {
	var category model.TraditionCategory
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *traditionCategoryRepository) FindAll(ctx context.Context) ([]model.TraditionCategory, error) {
	var categories []model.TraditionCategory
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *traditionCategoryRepository) Update(ctx context.Context, category *model.TraditionCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *traditionCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TraditionCategory{}, "id = ?", id).Error
}

func (r *traditionCategoryRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tradition{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

type EthnicCategoryRepository interface {
	Create(ctx context.Context, category *model.EthnicCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EthnicCategory, error)
	FindByName(ctx context.Context, name string) (*model.EthnicCategory, error)
	FindAll(ctx context.Context) ([]model.EthnicCategory, error)
	Update(ctx context.Context, category *model.EthnicCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type ethnicCategoryRepository struct {
	db *gorm.DB
}

func NewEthnicCategoryRepository(db *gorm.DB) EthnicCategoryRepository {
	return &ethnicCategoryRepository{db: db}
}

func (r *ethnicCategoryRepository) Create(ctx context.Context, category *model.EthnicCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *ethnicCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EthnicCategory, error) {
	var category model.EthnicCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *ethnicCategoryRepository) FindByName(ctx context.Context, name string) (*model.EthnicCategory, error) {
	var category model.EthnicCategory
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *ethnicCategoryRepository) FindAll(ctx context.Context) ([]model.EthnicCategory, error) {
	var categories []model.EthnicCategory
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *ethnicCategoryRepository) Update(ctx context.Context, category *model.EthnicCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *ethnicCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EthnicCategory{}, "id = ?", id).Error
}

func (r *ethnicCategoryRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EthnicGroup{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

type CreativeCategoryRepository interface {
	Create(ctx context.Context, category *model.CreativeCategory) error
	CreateSubCategory(ctx context.Context, sub *model.CreativeSubCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CreativeCategory, error)
	FindByName(ctx context.Context, name string) (*model.CreativeCategory, error)
	FindSubCategoryByID(ctx context.Context, id uuid.UUID) (*model.CreativeSubCategory, error)
	FindAll(ctx context.Context) ([]model.CreativeCategory, error)
	Update(ctx context.Context, category *model.CreativeCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteSubCategory(ctx context.Context, id uuid.UUID) error
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
	CountSubCategoryReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type creativeCategoryRepository struct {
	db *gorm.DB
}

func NewCreativeCategoryRepository(db *gorm.DB) CreativeCategoryRepository {
	return &creativeCategoryRepository{db: db}
}

func (r *creativeCategoryRepository) Create(ctx context.Context, category *model.CreativeCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *creativeCategoryRepository) CreateSubCategory(ctx context.Context, sub *model.CreativeSubCategory) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *creativeCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CreativeCategory, error) {
	var category model.CreativeCategory
	if err := r.db.WithContext(ctx).Preload("SubCategories").First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *creativeCategoryRepository) FindByName(ctx context.Context, name string) (*model.CreativeCategory, error) {
	var category model.CreativeCategory
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *creativeCategoryRepository) FindSubCategoryByID(ctx context.Context, id uuid.UUID) (*model.CreativeSubCategory, error) {
	var sub model.CreativeSubCategory
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *creativeCategoryRepository) FindAll(ctx context.Context) ([]model.CreativeCategory, error) {
	var categories []model.CreativeCategory
	err := r.db.WithContext(ctx).Preload("SubCategories").Order("name").Find(&categories).Error
	return categories, err
}

func (r *creativeCategoryRepository) Update(ctx context.Context, category *model.CreativeCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *creativeCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.CreativeSubCategory{}, "category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CreativeCategory{}, "id = ?", id).Error
	})
}

func (r *creativeCategoryRepository) DeleteSubCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CreativeSubCategory{}, "id = ?", id).Error
}

func (r *creativeCategoryRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CreativeActivity{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *creativeCategoryRepository) CountSubCategoryReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CreativeActivity{}).Where("sub_category_id = ?", id).Count(&count).Error
	return count, err
}
