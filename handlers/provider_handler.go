package handlers

import (
	"context"
	"errors"
	"net/http"

	"busbooking-backend/models"
	"busbooking-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderLookup finds the stored information for a named provider
type ProviderLookup interface {
	ProviderInfo(ctx context.Context, name string) (*models.RetrievalResult, error)
}

// ProviderHandler handles HTTP requests for provider information
type ProviderHandler struct {
	lookup ProviderLookup
	logger *zap.Logger
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(lookup ProviderLookup, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{lookup: lookup, logger: logger}
}

// ProviderResponse represents a provider's contact details and their source document
type ProviderResponse struct {
	models.ContactInfo
	Source     string  `json:"source"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// GetProvider handles GET /api/providers/:name
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	result, err := h.lookup.ProviderInfo(c.Request.Context(), c.Param("name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProviderNotRecognized):
			respondError(c, http.StatusNotFound, "PROVIDER_NOT_FOUND", "Provider not found")
		case errors.Is(err, service.ErrNoRetrievalResults):
			respondError(c, http.StatusNotFound, "INFORMATION_NOT_AVAILABLE", "No information available for this provider")
		default:
			h.logger.Error("provider lookup failed", zap.String("provider", c.Param("name")), zap.Error(err))
			respondError(c, http.StatusInternalServerError, "RETRIEVAL_FAILED", "Unable to retrieve information at the moment")
		}
		return
	}

	respondOK(c, http.StatusOK, ProviderResponse{
		ContactInfo: result.ContactInfo,
		Source:      result.Source,
		Content:     result.Content,
		Similarity:  result.Similarity,
	})
}
