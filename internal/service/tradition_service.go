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

type TraditionService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateTraditionRequest) (*model.Tradition, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tradition, error)
	List(ctx context.Context, q dto.ListQuery) (*dto.Paginated[model.Tradition], error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateTraditionRequest) (*model.Tradition, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	IncrementView(ctx context.Context, id uuid.UUID) error
}

type traditionService struct {
	repo       repository.TraditionRepository
	categories repository.TraditionCategoryRepository
	images     repository.ImageRepository
	users      repository.UserRepository
	store      storage.Storage
	cache      CacheService
	search     SearchService
	notifier   NotificationService
	rdb        *redis.Client
	rateLimit  time.Duration
}

func NewTraditionService(
	repo repository.TraditionRepository,
	categories repository.TraditionCategoryRepository,
	images repository.ImageRepository,
	users repository.UserRepository,
	store storage.Storage,
	cache CacheService,
	search SearchService,
	notifier NotificationService,
	rdb *redis.Client,
	rateLimit time.Duration,
) TraditionService {
	return &traditionService{
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

func (s *traditionService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateTraditionRequest) (*model.Tradition, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, user.ID, "create_tradition", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("please wait before creating another record: %w", apperror.ErrRateLimitExceeded)
	}

	categoryID := uuid.MustParse(req.CategoryID)
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tradition category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	tradition := &model.Tradition{
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
		Coordinator:         req.Coordinator,
		Phone:               req.Phone,
		History:             req.History,
		AlcoholFreeApproach: req.AlcoholFreeApproach,
		Results:             req.Results,
		StartYear:           req.StartYear,
		UserID:              user.ID,
	}

	if err := s.repo.Create(ctx, tradition); err != nil {
		return nil, err
	}

	saveImages(ctx, s.store, s.images, req.Images, folderTraditionImages, tradition.ID, model.OwnerTradition)

	if req.ReportFile != nil {
		if url, err := saveFile(ctx, s.store, req.ReportFile, folderTraditionFiles); err != nil {
			log.Printf("failed to save tradition report file: %v", err)
		} else {
			tradition.ReportFileURL = &url
			if err := s.repo.Update(ctx, tradition); err != nil {
				log.Printf("failed to attach report file to tradition %s: %v", tradition.ID, err)
				deleteFile(ctx, s.store, url)
			}
		}
	}

	if err := s.notifier.NotifyCreation(ctx, user.ID, tradition.ID, model.OwnerTradition, tradition.Name); err != nil {
		log.Printf("failed to notify tradition creation: %v", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheTraditions, cacheDashboard)

	created, err := s.repo.FindByID(ctx, tradition.ID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexTradition(created); err != nil {
		log.Printf("failed to index tradition %s: %v", created.ID, err)
	}

	return created, nil
}

func (s *traditionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Tradition, error) {
	tradition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tradition not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return tradition, nil
}

func (s *traditionService) List(ctx context.Context, q dto.ListQuery) (*dto.Paginated[model.Tradition], error) {
	q.Normalize()

	key := fmt.Sprintf("%s:%d:%d:%s:%s:%s:%d", cacheTraditions, q.Page, q.PageSize, q.Search, q.Category, q.Province, q.Year)
	var cached dto.Paginated[model.Tradition]
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

	traditions, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := dto.NewPaginated(traditions, total, q)
	s.cache.Set(ctx, key, page, 5*time.Minute)
	return page, nil
}

func (s *traditionService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateTraditionRequest) (*model.Tradition, error) {
	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	tradition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tradition not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !CheckPermission(actor, tradition.UserID) {
		return nil, fmt.Errorf("you cannot modify this tradition: %w", apperror.ErrForbidden)
	}

	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("tradition category not found: %w", apperror.ErrNotFound)
			}
			return nil, err
		}
		tradition.CategoryID = categoryID
	}
	if req.Name != nil {
		tradition.Name = *req.Name
	}
	if req.District != nil {
		tradition.District = *req.District
	}
	if req.Amphoe != nil {
		tradition.Amphoe = *req.Amphoe
	}
	if req.Province != nil {
		tradition.Province = *req.Province
	}
	if req.Type != nil {
		tradition.Type = *req.Type
	}
	if req.Village != nil {
		tradition.Village = req.Village
	}
	if req.Zipcode != nil {
		tradition.Zipcode = req.Zipcode
	}
	if req.DistrictCode != nil {
		tradition.DistrictCode = req.DistrictCode
	}
	if req.AmphoeCode != nil {
		tradition.AmphoeCode = req.AmphoeCode
	}
	if req.ProvinceCode != nil {
		tradition.ProvinceCode = req.ProvinceCode
	}
	if req.Coordinator != nil {
		tradition.Coordinator = req.Coordinator
	}
	if req.Phone != nil {
		tradition.Phone = req.Phone
	}
	if req.History != nil {
		tradition.History = *req.History
	}
	if req.AlcoholFreeApproach != nil {
		tradition.AlcoholFreeApproach = *req.AlcoholFreeApproach
	}
	if req.Results != nil {
		tradition.Results = req.Results
	}
	if req.StartYear != nil {
		tradition.StartYear = *req.StartYear
	}

	// Replace the report file save-first: the old file is only removed after
	// the new one is on disk and the row points at it.
	var oldReportFile string
	if req.ReportFile != nil {
		url, err := saveFile(ctx, s.store, req.ReportFile, folderTraditionFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to save report file: %w", err)
		}
		if tradition.ReportFileURL != nil {
			oldReportFile = *tradition.ReportFileURL
		}
		tradition.ReportFileURL = &url
	} else if req.RemoveReportFile && tradition.ReportFileURL != nil {
		oldReportFile = *tradition.ReportFileURL
		tradition.ReportFileURL = nil
	}

	// Category/Images/User associations are already loaded; clear them so Save
	// only touches the tradition row.
	tradition.Category = model.TraditionCategory{}
	tradition.Images = nil
	tradition.User = model.User{}

	if err := s.repo.Update(ctx, tradition); err != nil {
		return nil, err
	}

	if oldReportFile != "" {
		deleteFile(ctx, s.store, oldReportFile)
	}

	deleteOwnedImages(ctx, s.store, s.images, req.DeletedImageIDs, tradition.ID, model.OwnerTradition)
	saveImages(ctx, s.store, s.images, req.Images, folderTraditionImages, tradition.ID, model.OwnerTradition)

	s.cache.InvalidatePrefix(ctx, cacheTraditions, cacheDashboard)

	updated, err := s.repo.FindByID(ctx, tradition.ID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexTradition(updated); err != nil {
		log.Printf("failed to reindex tradition %s: %v", updated.ID, err)
	}

	return updated, nil
}

func (s *traditionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return err
	}

	tradition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tradition not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if !CheckPermission(actor, tradition.UserID) {
		return fmt.Errorf("you cannot delete this tradition: %w", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Rows are gone; file unlinks are best-effort from here on.
	for _, img := range tradition.Images {
		deleteFile(ctx, s.store, img.URL)
	}
	if tradition.ReportFileURL != nil {
		deleteFile(ctx, s.store, *tradition.ReportFileURL)
	}

	if err := s.search.DeleteTradition(id.String()); err != nil {
		log.Printf("failed to remove tradition %s from index: %v", id, err)
	}

	s.cache.InvalidatePrefix(ctx, cacheTraditions, cacheDashboard)
	return nil
}

func (s *traditionService) IncrementView(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementViewCount(ctx, id)
}
