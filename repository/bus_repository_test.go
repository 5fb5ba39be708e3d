package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busbooking-backend/models"
	"busbooking-backend/storage"
)

func testBusData() models.BusData {
	return models.BusData{
		Districts: []models.District{
			{Name: "Dhaka", DroppingPoints: []models.DroppingPoint{{Name: "Gabtoli", Price: 50}}},
			{Name: "Rajshahi", DroppingPoints: []models.DroppingPoint{
				{Name: "Shaheb Bazar", Price: 350},
				{Name: "Laxmipur", Price: 450},
			}},
			{Name: "Sylhet", DroppingPoints: []models.DroppingPoint{{Name: "Kadamtali", Price: 300}}},
			{Name: "Dhaka", DroppingPoints: []models.DroppingPoint{{Name: "Duplicate", Price: 1}}},
		},
		BusProviders: []models.Provider{
			{Name: "Desh Travel", CoverageDistricts: []string{"Dhaka", "Rajshahi"}},
			{Name: "Hanif", CoverageDistricts: []string{"Dhaka", "Rajshahi", "Sylhet"}},
			{Name: "Green Line", CoverageDistricts: []string{"Sylhet"}},
		},
	}
}

func intPtr(v int) *int { return &v }

func TestBusRepository_GetDistricts(t *testing.T) {
	repo := NewBusRepository(testBusData())
	assert.Equal(t, []string{"Dhaka", "Rajshahi", "Sylhet"}, repo.GetDistricts())
}

func TestBusRepository_GetProviders(t *testing.T) {
	repo := NewBusRepository(testBusData())
	providers := repo.GetProviders()
	require.Len(t, providers, 3)
	assert.Equal(t, "Desh Travel", providers[0].Name)

	providers[0].Name = "mutated"
	assert.Equal(t, "Desh Travel", repo.GetProviders()[0].Name)
}

func TestBusRepository_SearchRoutes(t *testing.T) {
	repo := NewBusRepository(testBusData())

	tests := []struct {
		name     string
		from, to string
		maxPrice *int
		want     []models.Route
	}{
		{
			name: "all dropping points for every covering provider",
			from: "Dhaka", to: "Rajshahi",
			want: []models.Route{
				{Provider: "Desh Travel", FromDistrict: "Dhaka", ToDistrict: "Rajshahi", DroppingPoint: "Shaheb Bazar", Price: 350},
				{Provider: "Desh Travel", FromDistrict: "Dhaka", ToDistrict: "Rajshahi", DroppingPoint: "Laxmipur", Price: 450},
				{Provider: "Hanif", FromDistrict: "Dhaka", ToDistrict: "Rajshahi", DroppingPoint: "Shaheb Bazar", Price: 350},
				{Provider: "Hanif", FromDistrict: "Dhaka", ToDistrict: "Rajshahi", DroppingPoint: "Laxmipur", Price: 450},
			},
		},
		{
			name: "price ceiling is inclusive",
			from: "Dhaka", to: "Rajshahi", maxPrice: intPtr(350),
			want: []models.Route{
				{Provider: "Desh Travel", FromDistrict: "Dhaka", ToDistrict: "Rajshahi", DroppingPoint: "Shaheb Bazar", Price: 350},
				{Provider: "Hanif", FromDistrict: "Dhaka", ToDistrict: "Rajshahi", DroppingPoint: "Shaheb Bazar", Price: 350},
			},
		},
		{
			name: "unknown destination",
			from: "Dhaka", to: "Khulna",
			want: []models.Route{},
		},
		{
			name: "no provider covers both",
			from: "Rajshahi", to: "Sylhet", maxPrice: intPtr(100),
			want: []models.Route{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.SearchRoutes(tt.from, tt.to, tt.maxPrice)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBusRepository_SearchRoutesRespectsCeiling(t *testing.T) {
	repo := NewBusRepository(testBusData())
	for _, route := range repo.SearchRoutes("Dhaka", "Rajshahi", intPtr(400)) {
		assert.LessOrEqual(t, route.Price, 400)
	}
}

func TestBusRepository_HasRoute(t *testing.T) {
	repo := NewBusRepository(testBusData())
	assert.True(t, repo.HasRoute("Hanif", "Dhaka", "Sylhet", "Kadamtali"))
	assert.False(t, repo.HasRoute("Desh Travel", "Dhaka", "Sylhet", "Kadamtali"))
	assert.False(t, repo.HasRoute("Hanif", "Dhaka", "Sylhet", "Nowhere"))
}

func TestLoadBusRepository(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	doc := `{
		"districts": [{"name": "Dhaka", "dropping_points": [{"name": "Gabtoli", "price": 50}]}],
		"bus_providers": [{"name": "Hanif", "coverage_districts": ["Dhaka"]}]
	}`
	require.NoError(t, store.Upload(ctx, "data.json", strings.NewReader(doc)))

	repo, err := LoadBusRepository(ctx, store, "data.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dhaka"}, repo.GetDistricts())
	assert.Equal(t, "Hanif", repo.GetProviders()[0].Name)

	_, err = LoadBusRepository(ctx, store, "missing.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Upload(ctx, "broken.json", strings.NewReader("{")))
	_, err = LoadBusRepository(ctx, store, "broken.json")
	assert.Error(t, err)
}
