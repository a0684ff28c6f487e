package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
	"github.com/cabindev/civicspace-sub000/pkg/storage"
)

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*model.User, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error)
	ListUsers(ctx context.Context, q dto.UserListQuery) (*dto.Paginated[model.User], error)
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role model.Role) error
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
}

type authService struct {
	repo     repository.UserRepository
	store    storage.Storage
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, store storage.Storage, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		store:    store,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*model.User, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email %s is already registered: %w", req.Email, apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         model.RoleMember,
	}

	if req.Image != nil {
		if url, err := saveFile(ctx, s.store, req.Image, folderAvatars); err != nil {
			log.Printf("failed to save avatar for %s: %v", req.Email, err)
		} else {
			user.Image = &url
		}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if user.Image != nil {
			deleteFile(ctx, s.store, *user.Image)
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &dto.AuthResponse{Token: token, User: user}, nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if req.FirstName != nil && *req.FirstName != "" {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil && *req.LastName != "" {
		user.LastName = *req.LastName
	}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 8 {
			return nil, fmt.Errorf("password must be at least 8 characters: %w", apperror.ErrInvalidInput)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	// Save the new avatar before dropping the old one.
	var oldImage string
	if req.Image != nil {
		url, err := saveFile(ctx, s.store, req.Image, folderAvatars)
		if err != nil {
			return nil, fmt.Errorf("failed to save avatar: %w", err)
		}
		if user.Image != nil {
			oldImage = *user.Image
		}
		user.Image = &url
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldImage != "" {
		deleteFile(ctx, s.store, oldImage)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context, q dto.UserListQuery) (*dto.Paginated[model.User], error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 10
	}

	users, total, err := s.repo.FindAll(ctx, q.Search, q.Role, (q.Page-1)*q.PageSize, q.PageSize)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return dto.NewPaginated(users, total, dto.ListQuery{Page: q.Page, PageSize: q.PageSize}), nil
}

// UpdateRole changes a user's role; only SUPER_ADMIN may do this.
func (s *authService) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role model.Role) error {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return err
	}

	if actor.Role != model.RoleSuperAdmin {
		return fmt.Errorf("only a super admin can change roles: %w", apperror.ErrForbidden)
	}

	if !role.Valid() {
		return fmt.Errorf("unknown role %q: %w", role, apperror.ErrInvalidInput)
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	return s.repo.UpdateRole(ctx, targetID, role)
}

// DeleteUser removes an account. Blocked while the user still owns content.
func (s *authService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user account no longer exists: %w", apperror.ErrUnauthorized)
		}
		return err
	}

	if actor.Role != model.RoleSuperAdmin {
		return fmt.Errorf("only a super admin can delete users: %w", apperror.ErrForbidden)
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	owned, err := s.repo.CountOwnedContent(ctx, targetID)
	if err != nil {
		return err
	}
	if owned > 0 {
		return fmt.Errorf("user still owns %d records: %w", owned, apperror.ErrConflict)
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	if target.Image != nil {
		deleteFile(ctx, s.store, *target.Image)
	}
	return nil
}
