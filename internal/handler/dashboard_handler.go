package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/service"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
	"github.com/cabindev/civicspace-sub000/pkg/response"
	"github.com/cabindev/civicspace-sub000/pkg/validator"
)

type DashboardHandler struct {
	dashboard service.DashboardService
}

func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	var q dto.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	overview, err := h.dashboard.Overview(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, overview)
}
