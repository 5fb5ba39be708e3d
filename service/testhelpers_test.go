package service

import (
	"context"
	"sync"

	"busbooking-backend/models"
	"busbooking-backend/repository"
)

func testStore() *repository.BusRepository {
	return repository.NewBusRepository(models.BusData{
		Districts: []models.District{
			{Name: "Dhaka", DroppingPoints: []models.DroppingPoint{{Name: "Gabtoli", Price: 50}}},
			{Name: "Chattogram", DroppingPoints: []models.DroppingPoint{{Name: "GEC", Price: 600}}},
			{Name: "Rajshahi", DroppingPoints: []models.DroppingPoint{
				{Name: "Shaheb Bazar", Price: 350},
				{Name: "Laxmipur", Price: 450},
			}},
			{Name: "Sylhet", DroppingPoints: []models.DroppingPoint{
				{Name: "Kadamtali", Price: 300},
				{Name: "Subhanighat", Price: 550},
			}},
		},
		BusProviders: []models.Provider{
			{Name: "Green Line", CoverageDistricts: []string{"Dhaka", "Sylhet", "Chattogram"}},
			{Name: "Hanif", CoverageDistricts: []string{"Dhaka", "Rajshahi", "Sylhet"}},
			{Name: "Shyamoli", CoverageDistricts: []string{"Dhaka", "Rajshahi"}},
		},
	})
}

type searchCall struct {
	query    string
	provider string
	k        int
}

// fakeSearcher returns canned documents and records every call
type fakeSearcher struct {
	mu    sync.Mutex
	docs  []models.ScoredDocument
	err   error
	calls []searchCall
}

func (f *fakeSearcher) SemanticSearch(ctx context.Context, query, providerFilter string, k int) ([]models.ScoredDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, searchCall{query: query, provider: providerFilter, k: k})
	if f.err != nil {
		return nil, f.err
	}
	docs := f.docs
	if k > 0 && len(docs) > k {
		docs = docs[:k]
	}
	return docs, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func scored(provider, content string, distance float64) models.ScoredDocument {
	return models.ScoredDocument{
		ProviderDocument: models.ProviderDocument{
			Provider: provider,
			Source:   provider + ".txt",
			Content:  content,
		},
		Distance: distance,
	}
}

const greenLineDoc = `Green Line Paribahan
Official Address: 9/2 Outer Circular Road, Dhaka
Contact Number: 01730-060000
Email: info@greenlinebd.com
Website Link: https://greenlinebd.com
Privacy Policy: we collect passenger data only for ticketing`
