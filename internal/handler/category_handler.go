package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/service"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
	"github.com/cabindev/civicspace-sub000/pkg/response"
	"github.com/cabindev/civicspace-sub000/pkg/validator"
)

type CategoryHandler struct {
	categories service.CategoryService
}

func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid category id: %w", apperror.ErrInvalidInput))
		return uuid.Nil, false
	}
	return id, true
}

func (h *CategoryHandler) ListTradition(c *gin.Context) {
	categories, err := h.categories.ListTraditionCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *CategoryHandler) CreateTradition(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	category, err := h.categories.CreateTraditionCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category, "category created")
}

func (h *CategoryHandler) UpdateTradition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	category, err := h.categories.UpdateTraditionCategory(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

func (h *CategoryHandler) DeleteTradition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categories.DeleteTraditionCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "category deleted")
}

func (h *CategoryHandler) ListEthnic(c *gin.Context) {
	categories, err := h.categories.ListEthnicCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *CategoryHandler) CreateEthnic(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	category, err := h.categories.CreateEthnicCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category, "category created")
}

func (h *CategoryHandler) UpdateEthnic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	category, err := h.categories.UpdateEthnicCategory(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

func (h *CategoryHandler) DeleteEthnic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categories.DeleteEthnicCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "category deleted")
}

func (h *CategoryHandler) ListCreative(c *gin.Context) {
	categories, err := h.categories.ListCreativeCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *CategoryHandler) CreateCreative(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	category, err := h.categories.CreateCreativeCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category, "category created")
}

func (h *CategoryHandler) UpdateCreative(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	category, err := h.categories.UpdateCreativeCategory(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

func (h *CategoryHandler) DeleteCreative(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categories.DeleteCreativeCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "category deleted")
}

func (h *CategoryHandler) CreateCreativeSub(c *gin.Context) {
	var req dto.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	sub, err := h.categories.CreateCreativeSubCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub, "sub-category created")
}

func (h *CategoryHandler) DeleteCreativeSub(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categories.DeleteCreativeSubCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "sub-category deleted")
}
