package dto

import (
	"mime/multipart"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

type SignUpRequest struct {
	FirstName string                `form:"firstName" binding:"required"`
	LastName  string                `form:"lastName" binding:"required"`
	Email     string                `form:"email" binding:"required,email"`
	Password  string                `form:"password" binding:"required,min=8"`
	Image     *multipart.FileHeader `form:"image"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName *string               `form:"firstName"`
	LastName  *string               `form:"lastName"`
	Password  *string               `form:"password"`
	Image     *multipart.FileHeader `form:"image"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=MEMBER ADMIN SUPER_ADMIN"`
}

type UserListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Role     string `form:"role"`
}
