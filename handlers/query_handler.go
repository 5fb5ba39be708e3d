package handlers

import (
	"errors"
	"net/http"

	"busbooking-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QueryHandler handles free-text questions
type QueryHandler struct {
	querier service.Querier
	logger  *zap.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(querier service.Querier, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{querier: querier, logger: logger}
}

// QueryRequest represents the request body for a free-text query
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// Query handles POST /api/query
func (h *QueryHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	answer, err := h.querier.Query(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, service.ErrQueryTooShort) {
			respondError(c, http.StatusBadRequest, "QUERY_TOO_SHORT", "Query is too short")
			return
		}
		h.logger.Error("query failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", "Failed to answer query")
		return
	}

	respondOK(c, http.StatusOK, answer)
}
