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

type EthnicGroupHandler struct {
	groups service.EthnicGroupService
}

func NewEthnicGroupHandler(groups service.EthnicGroupService) *EthnicGroupHandler {
	return &EthnicGroupHandler{groups: groups}
}

func (h *EthnicGroupHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateEthnicGroupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	group, err := h.groups.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, group, "ethnic group created")
}

func (h *EthnicGroupHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	page, err := h.groups.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page)
}

func (h *EthnicGroupHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid ethnic group id: %w", apperror.ErrInvalidInput))
		return
	}

	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.groups.IncrementView(c.Request.Context(), id); err != nil {
		log.Printf("failed to count view for ethnic group %s: %v", id, err)
	}

	response.OK(c, group)
}

func (h *EthnicGroupHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid ethnic group id: %w", apperror.ErrInvalidInput))
		return
	}

	var req dto.UpdateEthnicGroupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	group, err := h.groups.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, group)
}

func (h *EthnicGroupHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid ethnic group id: %w", apperror.ErrInvalidInput))
		return
	}

	if err := h.groups.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "ethnic group deleted")
}
