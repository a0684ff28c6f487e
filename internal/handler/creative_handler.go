package handler

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/service"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
	"github.com/cabindev/civicspace-sub000/pkg/response"
	"github.com/cabindev/civicspace-sub000/pkg/validator"
)

type CreativeActivityHandler struct {
	activities service.CreativeActivityService
}

func NewCreativeActivityHandler(activities service.CreativeActivityService) *CreativeActivityHandler {
	return &CreativeActivityHandler{activities: activities}
}

func (h *CreativeActivityHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCreativeActivityRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	activity, err := h.activities.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, activity, "creative activity created")
}

func (h *CreativeActivityHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	page, err := h.activities.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page)
}

func (h *CreativeActivityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid creative activity id: %w", apperror.ErrInvalidInput))
		return
	}

	activity, err := h.activities.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.activities.IncrementView(c.Request.Context(), id); err != nil {
		log.Printf("failed to count view for creative activity %s: %v", id, err)
	}

	response.OK(c, activity)
}

func (h *CreativeActivityHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid creative activity id: %w", apperror.ErrInvalidInput))
		return
	}

	var req dto.UpdateCreativeActivityRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	activity, err := h.activities.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, activity)
}

func (h *CreativeActivityHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid creative activity id: %w", apperror.ErrInvalidInput))
		return
	}

	if err := h.activities.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "creative activity deleted")
}
