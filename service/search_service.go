package service

import (
	"context"
	"errors"

	"busbooking-backend/models"
)

// ErrRouteNotFound is returned when no provider serves the requested route
var ErrRouteNotFound = errors.New("no routes found")

// SearchService handles route search over the structured bus data
type SearchService struct {
	store StructuredStore
}

// NewSearchService creates a new search service
func NewSearchService(store StructuredStore) *SearchService {
	return &SearchService{store: store}
}

// SearchRoutesRequest represents a route search
type SearchRoutesRequest struct {
	From     string
	To       string
	MaxPrice *int
}

// SearchRoutesResult represents the routes found
type SearchRoutesResult struct {
	Routes []models.Route
}

// SearchRoutes returns all routes matching the request or ErrRouteNotFound
func (s *SearchService) SearchRoutes(ctx context.Context, req SearchRoutesRequest) (*SearchRoutesResult, error) {
	routes := s.store.SearchRoutes(req.From, req.To, req.MaxPrice)
	if len(routes) == 0 {
		return nil, ErrRouteNotFound
	}
	return &SearchRoutesResult{Routes: routes}, nil
}

// GetDistricts returns all district names
func (s *SearchService) GetDistricts(ctx context.Context) []string {
	return s.store.GetDistricts()
}

// GetProviders returns all bus providers
func (s *SearchService) GetProviders(ctx context.Context) []models.Provider {
	return s.store.GetProviders()
}
