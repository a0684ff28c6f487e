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

type PublicPolicyService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreatePublicPolicyRequest) (*model.PublicPolicy, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.PublicPolicy, error)
	List(ctx context.Context, q dto.ListQuery) (*dto.Paginated[model.PublicPolicy], error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdatePublicPolicyRequest) (*model.PublicPolicy, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	IncrementView(ctx context.Context, id uuid.UUID) error
}

type publicPolicyService struct {
	repo      repository.PublicPolicyRepository
	images    repository.ImageRepository
	users     repository.UserRepository
	store     storage.Storage
	cache     CacheService
	search    SearchService
	notifier  NotificationService
	rdb       *redis.Client
	rateLimit time.Duration
}

func NewPublicPolicyService(
	repo repository.PublicPolicyRepository,
	images repository.ImageRepository,
	users repository.UserRepository,
	store storage.Storage,
	cache CacheService,
	search SearchService,
	notifier NotificationService,
	rdb *redis.Client,
	rateLimit time.Duration,
) PublicPolicyService {
	return &publicPolicyService{
		repo:      repo,
		images:    images,
		users:     users,
		store:     store,
		cache:     cache,
		search:    search,
		notifier:  notifier,
		rdb:       rdb,
		rateLimit: rateLimit,
	}
}

func parseSigningDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("signingDate %q is not a valid date: %w", raw, apperror.ErrInvalidInput)
}

func (s *publicPolicyService) Create(ctx context.Context, userID uuid.UUID, req dto.CreatePublicPolicyRequest) (*model.PublicPolicy, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, user.ID, "create_public_policy", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("please wait before creating another record: %w", apperror.ErrRateLimitExceeded)
	}

	signingDate, err := parseSigningDate(req.SigningDate)
	if err != nil {
		return nil, err
	}

	policy := &model.PublicPolicy{
		Name:        req.Name,
		SigningDate: signingDate,
		Level:       model.PolicyLevel(req.Level),
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
		Content:   req.Content,
		Summary:   req.Summary,
		Results:   req.Results,
		VideoLink: req.VideoLink,
		UserID:    user.ID,
	}

	if err := s.repo.Create(ctx, policy); err != nil {
		return nil, err
	}

	saveImages(ctx, s.store, s.images, req.Images, folderPolicyImages, policy.ID, model.OwnerPublicPolicy)

	if req.PolicyFile != nil {
		if url, err := saveFile(ctx, s.store, req.PolicyFile, folderPolicyFiles); err != nil {
			log.Printf("failed to save policy file: %v", err)
		} else {
			policy.PolicyFileURL = &url
			if err := s.repo.Update(ctx, policy); err != nil {
				log.Printf("failed to attach policy file to policy %s: %v", policy.ID, err)
				deleteFile(ctx, s.store, url)
			}
		}
	}

	if err := s.notifier.NotifyCreation(ctx, user.ID, policy.ID, model.OwnerPublicPolicy, policy.Name); err != nil {
		log.Printf("failed to notify policy creation: %v", err)
	}

	s.cache.InvalidatePrefix(ctx, cachePolicies, cacheDashboard)

	created, err := s.repo.FindByID(ctx, policy.ID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexPublicPolicy(created); err != nil {
		log.Printf("failed to index policy %s: %v", created.ID, err)
	}

	return created, nil
}

func (s *publicPolicyService) GetByID(ctx context.Context, id uuid.UUID) (*model.PublicPolicy, error) {
	policy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("public policy not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return policy, nil
}

func (s *publicPolicyService) List(ctx context.Context, q dto.ListQuery) (*dto.Paginated[model.PublicPolicy], error) {
	q.Normalize()

	if q.Level != "" && !model.PolicyLevel(q.Level).Valid() {
		return nil, fmt.Errorf("unknown policy level %q: %w", q.Level, apperror.ErrInvalidInput)
	}

	key := fmt.Sprintf("%s:%d:%d:%s:%s:%s", cachePolicies, q.Page, q.PageSize, q.Search, q.Level, q.Province)
	var cached dto.Paginated[model.PublicPolicy]
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	policies, total, err := s.repo.FindAll(ctx, repository.ListFilter{
		Search:   q.Search,
		Level:    q.Level,
		Province: q.Province,
		Offset:   q.Offset(),
		Limit:    q.PageSize,
	})
	if err != nil {
		return nil, err
	}

	page := dto.NewPaginated(policies, total, q)
	s.cache.Set(ctx, key, page, 5*time.Minute)
	return page, nil
}

func (s *publicPolicyService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdatePublicPolicyRequest) (*model.PublicPolicy, error) {
	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	policy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("public policy not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !CheckPermission(actor, policy.UserID) {
		return nil, fmt.Errorf("you cannot modify this policy: %w", apperror.ErrForbidden)
	}

	if req.Name != nil {
		policy.Name = *req.Name
	}
	if req.SigningDate != nil {
		signingDate, err := parseSigningDate(*req.SigningDate)
		if err != nil {
			return nil, err
		}
		policy.SigningDate = signingDate
	}
	if req.Level != nil {
		policy.Level = model.PolicyLevel(*req.Level)
	}
	if req.District != nil {
		policy.District = *req.District
	}
	if req.Amphoe != nil {
		policy.Amphoe = *req.Amphoe
	}
	if req.Province != nil {
		policy.Province = *req.Province
	}
	if req.Type != nil {
		policy.Type = *req.Type
	}
	if req.Village != nil {
		policy.Village = req.Village
	}
	if req.Zipcode != nil {
		policy.Zipcode = req.Zipcode
	}
	if req.DistrictCode != nil {
		policy.DistrictCode = req.DistrictCode
	}
	if req.AmphoeCode != nil {
		policy.AmphoeCode = req.AmphoeCode
	}
	if req.ProvinceCode != nil {
		policy.ProvinceCode = req.ProvinceCode
	}
	if req.Content != nil {
		policy.Content = *req.Content
	}
	if req.Summary != nil {
		policy.Summary = *req.Summary
	}
	if req.Results != nil {
		policy.Results = req.Results
	}
	if req.VideoLink != nil {
		policy.VideoLink = req.VideoLink
	}

	var oldPolicyFile string
	if req.PolicyFile != nil {
		url, err := saveFile(ctx, s.store, req.PolicyFile, folderPolicyFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to save policy file: %w", err)
		}
		if policy.PolicyFileURL != nil {
			oldPolicyFile = *policy.PolicyFileURL
		}
		policy.PolicyFileURL = &url
	} else if req.RemovePolicyFile && policy.PolicyFileURL != nil {
		oldPolicyFile = *policy.PolicyFileURL
		policy.PolicyFileURL = nil
	}

	policy.Images = nil
	policy.User = model.User{}

	if err := s.repo.Update(ctx, policy); err != nil {
		return nil, err
	}

	if oldPolicyFile != "" {
		deleteFile(ctx, s.store, oldPolicyFile)
	}

	deleteOwnedImages(ctx, s.store, s.images, req.DeletedImageIDs, policy.ID, model.OwnerPublicPolicy)
	saveImages(ctx, s.store, s.images, req.Images, folderPolicyImages, policy.ID, model.OwnerPublicPolicy)

	s.cache.InvalidatePrefix(ctx, cachePolicies, cacheDashboard)

	updated, err := s.repo.FindByID(ctx, policy.ID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexPublicPolicy(updated); err != nil {
		log.Printf("failed to reindex policy %s: %v", updated.ID, err)
	}

	return updated, nil
}

func (s *publicPolicyService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return err
	}

	policy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("public policy not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if !CheckPermission(actor, policy.UserID) {
		return fmt.Errorf("you cannot delete this policy: %w", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range policy.Images {
		deleteFile(ctx, s.store, img.URL)
	}
	if policy.PolicyFileURL != nil {
		deleteFile(ctx, s.store, *policy.PolicyFileURL)
	}

	if err := s.search.DeletePublicPolicy(id.String()); err != nil {
		log.Printf("failed to remove policy %s from index: %v", id, err)
	}

	s.cache.InvalidatePrefix(ctx, cachePolicies, cacheDashboard)
	return nil
}

func (s *publicPolicyService) IncrementView(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementViewCount(ctx, id)
}
