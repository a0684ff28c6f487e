package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
)

// CategoryService manages the three category families. Deletion is refused
// while content still references the category.
type CategoryService interface {
	ListTraditionCategories(ctx context.Context) ([]model.TraditionCategory, error)
	CreateTraditionCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.TraditionCategory, error)
	UpdateTraditionCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.TraditionCategory, error)
	DeleteTraditionCategory(ctx context.Context, id uuid.UUID) error

	ListEthnicCategories(ctx context.Context) ([]model.EthnicCategory, error)
	CreateEthnicCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.EthnicCategory, error)
	UpdateEthnicCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.EthnicCategory, error)
	DeleteEthnicCategory(ctx context.Context, id uuid.UUID) error

	ListCreativeCategories(ctx context.Context) ([]model.CreativeCategory, error)
	CreateCreativeCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.CreativeCategory, error)
	UpdateCreativeCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.CreativeCategory, error)
	DeleteCreativeCategory(ctx context.Context, id uuid.UUID) error
	CreateCreativeSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest) (*model.CreativeSubCategory, error)
	DeleteCreativeSubCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	traditions repository.TraditionCategoryRepository
	ethnic     repository.EthnicCategoryRepository
	creative   repository.CreativeCategoryRepository
	cache      CacheService
}

func NewCategoryService(
	traditions repository.TraditionCategoryRepository,
	ethnic repository.EthnicCategoryRepository,
	creative repository.CreativeCategoryRepository,
	cache CacheService,
) CategoryService {
	return &categoryService{
		traditions: traditions,
		ethnic:     ethnic,
		creative:   creative,
		cache:      cache,
	}
}

func (s *categoryService) ListTraditionCategories(ctx context.Context) ([]model.TraditionCategory, error) {
	return s.traditions.FindAll(ctx)
}

func (s *categoryService) CreateTraditionCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.TraditionCategory, error) {
	if _, err := s.traditions.FindByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("tradition category %q already exists: %w", req.Name, apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.TraditionCategory{Name: req.Name}
	if err := s.traditions.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateTraditionCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.TraditionCategory, error) {
	category, err := s.traditions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tradition category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if existing, err := s.traditions.FindByName(ctx, req.Name); err == nil && existing.ID != id {
		return nil, fmt.Errorf("tradition category %q already exists: %w", req.Name, apperror.ErrConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category.Name = req.Name
	if err := s.traditions.Update(ctx, category); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cacheTraditions)
	return category, nil
}

func (s *categoryService) DeleteTraditionCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.traditions.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tradition category not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	count, err := s.traditions.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category is used by %d traditions: %w", count, apperror.ErrConflict)
	}

	return s.traditions.Delete(ctx, id)
}

func (s *categoryService) ListEthnicCategories(ctx context.Context) ([]model.EthnicCategory, error) {
	return s.ethnic.FindAll(ctx)
}

func (s *categoryService) CreateEthnicCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.EthnicCategory, error) {
	if _, err := s.ethnic.FindByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("ethnic category %q already exists: %w", req.Name, apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.EthnicCategory{Name: req.Name}
	if err := s.ethnic.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateEthnicCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.EthnicCategory, error) {
	category, err := s.ethnic.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ethnic category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if existing, err := s.ethnic.FindByName(ctx, req.Name); err == nil && existing.ID != id {
		return nil, fmt.Errorf("ethnic category %q already exists: %w", req.Name, apperror.ErrConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category.Name = req.Name
	if err := s.ethnic.Update(ctx, category); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cacheEthnic)
	return category, nil
}

func (s *categoryService) DeleteEthnicCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ethnic.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("ethnic category not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	count, err := s.ethnic.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category is used by %d ethnic groups: %w", count, apperror.ErrConflict)
	}

	return s.ethnic.Delete(ctx, id)
}

func (s *categoryService) ListCreativeCategories(ctx context.Context) ([]model.CreativeCategory, error) {
	return s.creative.FindAll(ctx)
}

func (s *categoryService) CreateCreativeCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.CreativeCategory, error) {
	if _, err := s.creative.FindByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("creative category %q already exists: %w", req.Name, apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.CreativeCategory{Name: req.Name}
	if err := s.creative.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCreativeCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.CreativeCategory, error) {
	category, err := s.creative.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("creative category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if existing, err := s.creative.FindByName(ctx, req.Name); err == nil && existing.ID != id {
		return nil, fmt.Errorf("creative category %q already exists: %w", req.Name, apperror.ErrConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category.Name = req.Name
	category.SubCategories = nil
	if err := s.creative.Update(ctx, category); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cacheCreative)
	return category, nil
}

func (s *categoryService) DeleteCreativeCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.creative.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("creative category not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	count, err := s.creative.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category is used by %d creative activities: %w", count, apperror.ErrConflict)
	}

	return s.creative.Delete(ctx, id)
}

func (s *categoryService) CreateCreativeSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest) (*model.CreativeSubCategory, error) {
	categoryID := uuid.MustParse(req.CategoryID)
	if _, err := s.creative.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("creative category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	sub := &model.CreativeSubCategory{Name: req.Name, CategoryID: categoryID}
	if err := s.creative.CreateSubCategory(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *categoryService) DeleteCreativeSubCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.creative.FindSubCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("creative sub-category not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	count, err := s.creative.CountSubCategoryReferences(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("sub-category is used by %d creative activities: %w", count, apperror.ErrConflict)
	}

	return s.creative.DeleteSubCategory(ctx, id)
}
