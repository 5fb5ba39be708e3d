package service

import "strings"

// KeywordSet is a fixed vocabulary matched by substring containment
type KeywordSet []string

// MatchedBy reports whether any keyword occurs in text.
// text is expected to be lower-cased already.
func (k KeywordSet) MatchedBy(text string) bool {
	for _, word := range k {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

var (
	// CancellationKeywords route a query to the cancellation instructions
	CancellationKeywords = KeywordSet{"cancel", "cancellation", "refund"}

	// ProviderInfoKeywords mark questions about a provider's contact details or policies
	ProviderInfoKeywords = KeywordSet{
		"contact", "phone", "email", "address", "call", "reach",
		"privacy", "policy", "terms", "details", "information",
		"located", "office", "website", "number",
	}

	// ProviderRouteKeywords veto provider-info classification for route-like queries
	ProviderRouteKeywords = KeywordSet{"from", "to", "between", "route", "price", "taka", "fare"}

	// RouteKeywords mark route and fare searches
	RouteKeywords = KeywordSet{
		"bus", "route", "from", "to", "between", "operating",
		"price", "taka", "fare", "cost", "cheap", "under", "over",
		"travel", "available",
	}

	// PriceKeywords select the priced listing for a route answer
	PriceKeywords = KeywordSet{"price", "taka", "fare", "cost", "cheap"}
)

// Provider-info sub-intents, checked in this order
var (
	contactKeywords = KeywordSet{"phone", "call", "contact", "number"}
	addressKeywords = KeywordSet{"address", "location", "where", "office"}
	emailKeywords   = KeywordSet{"email", "mail"}
	policyKeywords  = KeywordSet{"privacy", "policy", "terms"}
	policyLineWords = KeywordSet{"privacy", "policy", "data", "collect"}
)

// Intent is the routing decision for a query
type Intent int

const (
	IntentAmbiguous Intent = iota
	IntentCancellation
	IntentProviderInfo
	IntentRoutePrice
)

// String returns the intent name
func (i Intent) String() string {
	switch i {
	case IntentCancellation:
		return "cancellation"
	case IntentProviderInfo:
		return "provider_info"
	case IntentRoutePrice:
		return "route_price"
	default:
		return "ambiguous"
	}
}

// Classifier decides the intent of a normalized query
type Classifier struct {
	providers []string // lower-cased provider names
}

// NewClassifier creates a classifier that recognizes the given provider names
func NewClassifier(providerNames []string) *Classifier {
	lowered := make([]string, 0, len(providerNames))
	for _, name := range providerNames {
		lowered = append(lowered, strings.ToLower(name))
	}
	return &Classifier{providers: lowered}
}

// Classify returns the first matching intent in priority order:
// cancellation, provider info, route/price, ambiguous.
// query must be lower-cased.
func (c *Classifier) Classify(query string) Intent {
	if CancellationKeywords.MatchedBy(query) {
		return IntentCancellation
	}
	if c.isProviderInfo(query) {
		return IntentProviderInfo
	}
	if RouteKeywords.MatchedBy(query) {
		return IntentRoutePrice
	}
	return IntentAmbiguous
}

func (c *Classifier) isProviderInfo(query string) bool {
	hasInfoKeyword := ProviderInfoKeywords.MatchedBy(query)
	hasRouteKeyword := ProviderRouteKeywords.MatchedBy(query)
	hasProvider := c.mentionsProvider(query)

	return (hasInfoKeyword && (hasProvider || !hasRouteKeyword)) ||
		(hasProvider && !hasRouteKeyword)
}

func (c *Classifier) mentionsProvider(query string) bool {
	for _, name := range c.providers {
		if name != "" && strings.Contains(query, name) {
			return true
		}
	}
	return false
}
