package handlers

import (
	"errors"
	"net/http"

	"busbooking-backend/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles HTTP requests for route search
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchRequest represents the request body for a route search
type SearchRequest struct {
	FromDistrict string `json:"from_district" binding:"required"`
	ToDistrict   string `json:"to_district" binding:"required"`
	MaxPrice     *int   `json:"max_price" binding:"omitempty,gt=0"`
}

// Search handles POST /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.searchService.SearchRoutes(c.Request.Context(), service.SearchRoutesRequest{
		From:     req.FromDistrict,
		To:       req.ToDistrict,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		if errors.Is(err, service.ErrRouteNotFound) {
			respondError(c, http.StatusNotFound, "ROUTE_NOT_FOUND",
				"No routes found from "+req.FromDistrict+" to "+req.ToDistrict)
			return
		}
		respondError(c, http.StatusInternalServerError, "SEARCH_FAILED", err.Error())
		return
	}

	respondOK(c, http.StatusOK, result.Routes)
}

// GetDistricts handles GET /api/search/districts
func (h *SearchHandler) GetDistricts(c *gin.Context) {
	respondOK(c, http.StatusOK, h.searchService.GetDistricts(c.Request.Context()))
}

// GetProviders handles GET /api/search/providers
func (h *SearchHandler) GetProviders(c *gin.Context) {
	respondOK(c, http.StatusOK, h.searchService.GetProviders(c.Request.Context()))
}
