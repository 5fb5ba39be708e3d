package models

// DroppingPoint represents a drop-off location inside a district and its fare
type DroppingPoint struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// District represents a district served by bus providers
type District struct {
	Name           string          `json:"name"`
	DroppingPoints []DroppingPoint `json:"dropping_points"`
}

// Provider represents a bus provider and the districts it covers
type Provider struct {
	Name              string   `json:"name"`
	CoverageDistricts []string `json:"coverage_districts"`
}

// Covers reports whether the provider operates in the district
func (p Provider) Covers(district string) bool {
	for _, d := range p.CoverageDistricts {
		if d == district {
			return true
		}
	}
	return false
}

// BusData is the on-disk layout of the structured bus data file
type BusData struct {
	Districts    []District `json:"districts"`
	BusProviders []Provider `json:"bus_providers"`
}

// Route is derived from a provider's coverage and a destination dropping point.
// It is never stored.
type Route struct {
	Provider      string `json:"provider"`
	FromDistrict  string `json:"from_district"`
	ToDistrict    string `json:"to_district"`
	DroppingPoint string `json:"dropping_point"`
	Price         int    `json:"price"`
}
