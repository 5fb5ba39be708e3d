package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"busbooking-backend/models"
	"busbooking-backend/storage"
)

// BusRepository answers district, provider and route queries over the static bus data.
// It is immutable after construction and safe for concurrent use.
type BusRepository struct {
	districts []models.District
	providers []models.Provider
	byName    map[string]int
}

// NewBusRepository creates a bus repository from decoded bus data.
// Duplicate district names are dropped, the first occurrence wins.
func NewBusRepository(data models.BusData) *BusRepository {
	r := &BusRepository{
		byName: make(map[string]int, len(data.Districts)),
	}
	for _, d := range data.Districts {
		if _, seen := r.byName[d.Name]; seen {
			continue
		}
		r.byName[d.Name] = len(r.districts)
		r.districts = append(r.districts, d)
	}
	r.providers = append(r.providers, data.BusProviders...)
	return r
}

// LoadBusRepository reads the bus data JSON document stored under key
func LoadBusRepository(ctx context.Context, store storage.Storage, key string) (*BusRepository, error) {
	raw, err := storage.ReadAll(ctx, store, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read bus data: %w", err)
	}

	var data models.BusData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode bus data %s: %w", key, err)
	}

	return NewBusRepository(data), nil
}

// GetDistricts returns district names in file order
func (r *BusRepository) GetDistricts() []string {
	names := make([]string, 0, len(r.districts))
	for _, d := range r.districts {
		names = append(names, d.Name)
	}
	return names
}

// GetProviders returns all bus providers
func (r *BusRepository) GetProviders() []models.Provider {
	providers := make([]models.Provider, len(r.providers))
	copy(providers, r.providers)
	return providers
}

// SearchRoutes returns every dropping point of the destination priced at or
// under maxPrice (nil means no ceiling) for each provider covering both districts.
// Unknown destinations yield an empty slice.
func (r *BusRepository) SearchRoutes(from, to string, maxPrice *int) []models.Route {
	routes := []models.Route{}

	idx, ok := r.byName[to]
	if !ok {
		return routes
	}
	destination := r.districts[idx]

	for _, p := range r.providers {
		if !p.Covers(from) || !p.Covers(to) {
			continue
		}
		for _, point := range destination.DroppingPoints {
			if maxPrice != nil && point.Price > *maxPrice {
				continue
			}
			routes = append(routes, models.Route{
				Provider:      p.Name,
				FromDistrict:  from,
				ToDistrict:    to,
				DroppingPoint: point.Name,
				Price:         point.Price,
			})
		}
	}

	return routes
}

// HasRoute reports whether provider serves the dropping point in to when travelling from from
func (r *BusRepository) HasRoute(provider, from, to, droppingPoint string) bool {
	for _, route := range r.SearchRoutes(from, to, nil) {
		if route.Provider == provider && route.DroppingPoint == droppingPoint {
			return true
		}
	}
	return false
}
