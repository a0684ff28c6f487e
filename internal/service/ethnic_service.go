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

type EthnicGroupService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateEthnicGroupRequest) (*model.EthnicGroup, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.EthnicGroup, error)
	List(ctx context.Context, q dto.ListQuery) (*dto.Paginated[model.EthnicGroup], error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateEthnicGroupRequest) (*model.EthnicGroup, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	IncrementView(ctx context.Context, id uuid.UUID) error
}

type ethnicGroupService struct {
	repo       repository.EthnicGroupRepository
	categories repository.EthnicCategoryRepository
	images     repository.ImageRepository
	users      repository.UserRepository
	store      storage.Storage
	cache      CacheService
	search     SearchService
	notifier   NotificationService
	rdb        *redis.Client
	rateLimit  time.Duration
}

func NewEthnicGroupService(
	repo repository.EthnicGroupRepository,
	categories repository.EthnicCategoryRepository,
	images repository.ImageRepository,
	users repository.UserRepository,
	store storage.Storage,
	cache CacheService,
	search SearchService,
	notifier NotificationService,
	rdb *redis.Client,
	rateLimit time.Duration,
) EthnicGroupService {
	return &ethnicGroupService{
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

func (s *ethnicGroupService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateEthnicGroupRequest) (*model.EthnicGroup, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, user.ID, "create_ethnic_group", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("please wait before creating another record: %w", apperror.ErrRateLimitExceeded)
	}

	categoryID := uuid.MustParse(req.CategoryID)
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ethnic category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	group := &model.EthnicGroup{
		CategoryID: categoryID,
		Name:       req.Name,
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
		History:             req.History,
		ActivityName:        req.ActivityName,
		ActivityOrigin:      req.ActivityOrigin,
		ActivityDetails:     req.ActivityDetails,
		AlcoholFreeApproach: req.AlcoholFreeApproach,
		Results:             req.Results,
		StartYear:           req.StartYear,
		VideoLink:           req.VideoLink,
		UserID:              user.ID,
	}

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	saveImages(ctx, s.store, s.images, req.Images, folderEthnicImages, group.ID, model.OwnerEthnicGroup)

	if req.File != nil {
		if url, err := saveFile(ctx, s.store, req.File, folderEthnicFiles); err != nil {
			log.Printf("failed to save ethnic group file: %v", err)
		} else {
			group.FileURL = &url
			if err := s.repo.Update(ctx, group); err != nil {
				log.Printf("failed to attach file to ethnic group %s: %v", group.ID, err)
				deleteFile(ctx, s.store, url)
			}
		}
	}

	if err := s.notifier.NotifyCreation(ctx, user.ID, group.ID, model.OwnerEthnicGroup, group.Name); err != nil {
		log.Printf("failed to notify ethnic group creation: %v", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheEthnic, cacheDashboard)

	created, err := s.repo.FindByID(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexEthnicGroup(created); err != nil {
		log.Printf("failed to index ethnic group %s: %v", created.ID, err)
	}

	return created, nil
}

func (s *ethnicGroupService) GetByID(ctx context.Context, id uuid.UUID) (*model.EthnicGroup, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ethnic group not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return group, nil
}

func (s *ethnicGroupService) List(ctx context.Context, q dto.ListQuery) (*dto.Paginated[model.EthnicGroup], error) {
	q.Normalize()

	key := fmt.Sprintf("%s:%d:%d:%s:%s:%s:%d", cacheEthnic, q.Page, q.PageSize, q.Search, q.Category, q.Province, q.Year)
	var cached dto.Paginated[model.EthnicGroup]
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

	groups, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := dto.NewPaginated(groups, total, q)
	s.cache.Set(ctx, key, page, 5*time.Minute)
	return page, nil
}

func (s *ethnicGroupService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateEthnicGroupRequest) (*model.EthnicGroup, error) {
	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ethnic group not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !CheckPermission(actor, group.UserID) {
		return nil, fmt.Errorf("you cannot modify this ethnic group: %w", apperror.ErrForbidden)
	}

	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("ethnic category not found: %w", apperror.ErrNotFound)
			}
			return nil, err
		}
		group.CategoryID = categoryID
	}
	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.District != nil {
		group.District = *req.District
	}
	if req.Amphoe != nil {
		group.Amphoe = *req.Amphoe
	}
	if req.Province != nil {
		group.Province = *req.Province
	}
	if req.Type != nil {
		group.Type = *req.Type
	}
	if req.Village != nil {
		group.Village = req.Village
	}
	if req.Zipcode != nil {
		group.Zipcode = req.Zipcode
	}
	if req.DistrictCode != nil {
		group.DistrictCode = req.DistrictCode
	}
	if req.AmphoeCode != nil {
		group.AmphoeCode = req.AmphoeCode
	}
	if req.ProvinceCode != nil {
		group.ProvinceCode = req.ProvinceCode
	}
	if req.History != nil {
		group.History = *req.History
	}
	if req.ActivityName != nil {
		group.ActivityName = *req.ActivityName
	}
	if req.ActivityOrigin != nil {
		group.ActivityOrigin = *req.ActivityOrigin
	}
	if req.ActivityDetails != nil {
		group.ActivityDetails = *req.ActivityDetails
	}
	if req.AlcoholFreeApproach != nil {
		group.AlcoholFreeApproach = *req.AlcoholFreeApproach
	}
	if req.Results != nil {
		group.Results = req.Results
	}
	if req.StartYear != nil {
		group.StartYear = *req.StartYear
	}
	if req.VideoLink != nil {
		group.VideoLink = req.VideoLink
	}

	var oldFile string
	if req.File != nil {
		url, err := saveFile(ctx, s.store, req.File, folderEthnicFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to save file: %w", err)
		}
		if group.FileURL != nil {
			oldFile = *group.FileURL
		}
		group.FileURL = &url
	} else if req.RemoveFile && group.FileURL != nil {
		oldFile = *group.FileURL
		group.FileURL = nil
	}

	group.Category = model.EthnicCategory{}
	group.Images = nil
	group.User = model.User{}

	if err := s.repo.Update(ctx, group); err != nil {
		return nil, err
	}

	if oldFile != "" {
		deleteFile(ctx, s.store, oldFile)
	}

	deleteOwnedImages(ctx, s.store, s.images, req.DeletedImageIDs, group.ID, model.OwnerEthnicGroup)
	saveImages(ctx, s.store, s.images, req.Images, folderEthnicImages, group.ID, model.OwnerEthnicGroup)

	s.cache.InvalidatePrefix(ctx, cacheEthnic, cacheDashboard)

	updated, err := s.repo.FindByID(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexEthnicGroup(updated); err != nil {
		log.Printf("failed to reindex ethnic group %s: %v", updated.ID, err)
	}

	return updated, nil
}

func (s *ethnicGroupService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return err
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("ethnic group not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if !CheckPermission(actor, group.UserID) {
		return fmt.Errorf("you cannot delete this ethnic group: %w", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range group.Images {
		deleteFile(ctx, s.store, img.URL)
	}
	if group.FileURL != nil {
		deleteFile(ctx, s.store, *group.FileURL)
	}

	if err := s.search.DeleteEthnicGroup(id.String()); err != nil {
		log.Printf("failed to remove ethnic group %s from index: %v", id, err)
	}

	s.cache.InvalidatePrefix(ctx, cacheEthnic, cacheDashboard)
	return nil
}

func (s *ethnicGroupService) IncrementView(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementViewCount(ctx, id)
}
