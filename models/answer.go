package models

// QueryType tags the branch that produced an answer
type QueryType string

const (
	QueryTypeCancellation QueryType = "cancellation"
	QueryTypeProviderInfo QueryType = "provider_info_rag"
	QueryTypeRouteSearch  QueryType = "route_search"
	QueryTypePriceSearch  QueryType = "price_search"
	QueryTypeHelp         QueryType = "help"
	QueryTypeError        QueryType = "error"
)

// RouteResult is one priced option listed in a price search answer
type RouteResult struct {
	Provider string `json:"provider"`
	Price    int    `json:"price"`
	Route    string `json:"route"`
}

// Answer is the response to a free-text query.
// Only Answer and QueryType are always set; the rest depends on the branch.
type Answer struct {
	Answer    string    `json:"answer"`
	QueryType QueryType `json:"query_type"`

	// Provider information
	Provider   string   `json:"provider,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	RAGUsed    bool     `json:"rag_used,omitempty"`

	// Route and price search
	From        string        `json:"from,omitempty"`
	To          string        `json:"to,omitempty"`
	MaxPrice    *int          `json:"max_price,omitempty"`
	Providers   []string      `json:"providers,omitempty"`
	Results     []RouteResult `json:"results,omitempty"`
	TotalRoutes int           `json:"total_routes,omitempty"`

	// Cancellation
	Endpoint string `json:"endpoint,omitempty"`
	Date     string `json:"date,omitempty"`

	// Help and fallbacks
	AvailableProviders []string `json:"available_providers,omitempty"`
	AvailableDistricts []string `json:"available_districts,omitempty"`
}
