package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
	"github.com/cabindev/civicspace-sub000/pkg/storage"
)

type CreativeActivityService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateCreativeActivityRequest) (*model.CreativeActivity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CreativeActivity, error)
	List(ctx context.Context, q dto.ListQuery) (*dto.Paginated[model.CreativeActivity], error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateCreativeActivityRequest) (*model.CreativeActivity, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	IncrementView(ctx context.Context, id uuid.UUID) error
}

type creativeActivityService struct {
	repo       repository.CreativeActivityRepository
	categories repository.CreativeCategoryRepository
	images     repository.ImageRepository
	users      repository.UserRepository
	store      storage.Storage
	cache      CacheService
	search     SearchService
	notifier   NotificationService
	rdb        *redis.Client
	rateLimit  time.Duration
}

func NewCreativeActivityService(
	repo repository.CreativeActivityRepository,
	categories repository.CreativeCategoryRepository,
	images repository.ImageRepository,
	users repository.UserRepository,
	store storage.Storage,
	cache CacheService,
	search SearchService,
	notifier NotificationService,
	rdb *redis.Client,
	rateLimit time.Duration,
) CreativeActivityService {
	return &creativeActivityService{
		repo:       repo,
		categories: categories,
		images:     images,
		users:      users,
		store:      store,
		cache:      cache,
		search:     search,
		notifier:   notifier,
		rdb:        rdb,
		rateLimit:  rateLimit,
	}
}

// resolveSubCategory verifies the sub-category exists and belongs to the
// given category.
func (s *creativeActivityService) resolveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) error {
	sub, err := s.categories.FindSubCategoryByID(ctx, subCategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("creative sub-category not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	if sub.CategoryID != categoryID {
		return fmt.Errorf("sub-category does not belong to the selected category: %w", apperror.ErrInvalidInput)
	}
	return nil
}

func (s *creativeActivityService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateCreativeActivityRequest) (*model.CreativeActivity, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, user.ID, "create_creative_activity", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("please wait before creating another record: %w", apperror.ErrRateLimitExceeded)
	}

	categoryID := uuid.MustParse(req.CategoryID)
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("creative category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	subCategoryID := uuid.MustParse(req.SubCategoryID)
	if err := s.resolveSubCategory(ctx, categoryID, subCategoryID); err != nil {
		return nil, err
	}

	activity := &model.CreativeActivity{
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Name:          req.Name,
		Location: model.Location{
			District:     req.District,
			Amphoe:       req.Amphoe,
			Province:     req.Province,
			Type:         req.Type,
			Village:      req.Village,
			Zipcode:      req.Zipcode,
			DistrictCode: req.DistrictCode,
			AmphoeCode:   req.AmphoeCode,
			ProvinceCode: req.ProvinceCode,
		},
		Coordinator: req.Coordinator,
		Phone:       req.Phone,
		Description: req.Description,
		Summary:     req.Summary,
		Results:     req.Results,
		StartYear:   req.StartYear,
		VideoLink:   req.VideoLink,
		UserID:      user.ID,
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}

	saveImages(ctx, s.store, s.images, req.Images, folderCreativeImages, activity.ID, model.OwnerCreativeActivity)

	if req.ReportFile != nil {
		if url, err := saveFile(ctx, s.store, req.ReportFile, folderCreativeFiles); err != nil {
			log.Printf("failed to save creative activity report file: %v", err)
		} else {
			activity.ReportFileURL = &url
			if err := s.repo.Update(ctx, activity); err != nil {
				log.Printf("failed to attach report file to creative activity %s: %v", activity.ID, err)
				deleteFile(ctx, s.store, url)
			}
		}
	}

	if err := s.notifier.NotifyCreation(ctx, user.ID, activity.ID, model.OwnerCreativeActivity, activity.Name); err != nil {
		log.Printf("failed to notify creative activity creation: %v", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheCreative, cacheDashboard)

	created, err := s.repo.FindByID(ctx, activity.ID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexCreativeActivity(created); err != nil {
		log.Printf("failed to index creative activity %s: %v", created.ID, err)
	}

	return created, nil
}

func (s *creativeActivityService) GetByID(ctx context.Context, id uuid.UUID) (*model.CreativeActivity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("creative activity not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return activity, nil
}

func (s *creativeActivityService) List(ctx context.Context, q dto.ListQuery) (*dto.Paginated[model.CreativeActivity], error) {
	q.Normalize()

	key := fmt.Sprintf("%s:%d:%d:%s:%s:%s:%d", cacheCreative, q.Page, q.PageSize, q.Search, q.Category, q.Province, q.Year)
	var cached dto.Paginated[model.CreativeActivity]
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	filter := repository.ListFilter{
		Search:   q.Search,
		Province: q.Province,
		Year:     q.Year,
		Offset:   q.Offset(),
		Limit:    q.PageSize,
	}
	if q.Category != "" {
		categoryID, err := uuid.Parse(q.Category)
		if err != nil {
			return nil, fmt.Errorf("category must be a valid id: %w", apperror.ErrInvalidInput)
		}
		filter.CategoryID = &categoryID
	}

	activities, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := dto.NewPaginated(activities, total, q)
	s.cache.Set(ctx, key, page, 5*time.Minute)
	return page, nil
}

func (s *creativeActivityService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateCreativeActivityRequest) (*model.CreativeActivity, error) {
	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("creative activity not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !CheckPermission(actor, activity.UserID) {
		return nil, fmt.Errorf("you cannot modify this creative activity: %w", apperror.ErrForbidden)
	}

	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("creative category not found: %w", apperror.ErrNotFound)
			}
			return nil, err
		}
		activity.CategoryID = categoryID
	}
	if req.SubCategoryID != nil {
		subCategoryID := uuid.MustParse(*req.SubCategoryID)
		if err := s.resolveSubCategory(ctx, activity.CategoryID, subCategoryID); err != nil {
			return nil, err
		}
		activity.SubCategoryID = subCategoryID
	} else if req.CategoryID != nil {
		// Changing the category alone must not leave the sub-category pointing
		// somewhere else.
		if err := s.resolveSubCategory(ctx, activity.CategoryID, activity.SubCategoryID); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		activity.Name = *req.Name
	}
	if req.District != nil {
		activity.District = *req.District
	}
	if req.Amphoe != nil {
		activity.Amphoe = *req.Amphoe
	}
	if req.Province != nil {
		activity.Province = *req.Province
	}
	if req.Type != nil {
		activity.Type = *req.Type
	}
	if req.Village != nil {
		activity.Village = req.Village
	}
	if req.Zipcode != nil {
		activity.Zipcode = req.Zipcode
	}
	if req.DistrictCode != nil {
		activity.DistrictCode = req.DistrictCode
	}
	if req.AmphoeCode != nil {
		activity.AmphoeCode = req.AmphoeCode
	}
	if req.ProvinceCode != nil {
		activity.ProvinceCode = req.ProvinceCode
	}
	if req.Coordinator != nil {
		activity.Coordinator = req.Coordinator
	}
	if req.Phone != nil {
		activity.Phone = req.Phone
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Summary != nil {
		activity.Summary = *req.Summary
	}
	if req.Results != nil {
		activity.Results = req.Results
	}
	if req.StartYear != nil {
		activity.StartYear = *req.StartYear
	}
	if req.VideoLink != nil {
		activity.VideoLink = req.VideoLink
	}

	var oldReportFile string
	if req.ReportFile != nil {
		url, err := saveFile(ctx, s.store, req.ReportFile, folderCreativeFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to save report file: %w", err)
		}
		if activity.ReportFileURL != nil {
			oldReportFile = *activity.ReportFileURL
		}
		activity.ReportFileURL = &url
	} else if req.RemoveReportFile && activity.ReportFileURL != nil {
		oldReportFile = *activity.ReportFileURL
		activity.ReportFileURL = nil
	}

	activity.Category = model.CreativeCategory{}
	activity.SubCategory = model.CreativeSubCategory{}
	activity.Images = nil
	activity.User = model.User{}

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, err
	}

	if oldReportFile != "" {
		deleteFile(ctx, s.store, oldReportFile)
	}

	deleteOwnedImages(ctx, s.store, s.images, req.DeletedImageIDs, activity.ID, model.OwnerCreativeActivity)
	saveImages(ctx, s.store, s.images, req.Images, folderCreativeImages, activity.ID, model.OwnerCreativeActivity)

	s.cache.InvalidatePrefix(ctx, cacheCreative, cacheDashboard)

	updated, err := s.repo.FindByID(ctx, activity.ID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexCreativeActivity(updated); err != nil {
		log.Printf("failed to reindex creative activity %s: %v", updated.ID, err)
	}

	return updated, nil
}

func (s *creativeActivityService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return err
	}

	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("creative activity not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if !CheckPermission(actor, activity.UserID) {
		return fmt.Errorf("you cannot delete this creative activity: %w", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range activity.Images {
		deleteFile(ctx, s.store, img.URL)
	}
	if activity.ReportFileURL != nil {
		deleteFile(ctx, s.store, *activity.ReportFileURL)
	}

	if err := s.search.DeleteCreativeActivity(id.String()); err != nil {
		log.Printf("failed to remove creative activity %s from index: %v", id, err)
	}

	s.cache.InvalidatePrefix(ctx, cacheCreative, cacheDashboard)
	return nil
}

func (s *creativeActivityService) IncrementView(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementViewCount(ctx, id)
}
