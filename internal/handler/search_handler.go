package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/cabindev/civicspace-sub000/internal/service"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
	"github.com/cabindev/civicspace-sub000/pkg/response"
)

type SearchHandler struct {
	search service.SearchService
}

func NewSearchHandler(search service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Token hands the frontend a scoped tenant token; queries go straight to
// meilisearch without touching this server.
func (h *SearchHandler) Token(c *gin.Context) {
	token, err := h.search.GenerateSearchToken()
	if err != nil {
		response.Error(c, fmt.Errorf("failed to issue search token: %w", apperror.ErrInternal))
		return
	}

	response.OK(c, gin.H{"token": token})
}
