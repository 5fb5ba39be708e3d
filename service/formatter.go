package service

import (
	"fmt"
	"strings"

	"busbooking-backend/models"
)

const (
	maxPriceListLines  = 10
	maxPolicyLines     = 5
	cancelEndpoint     = "/api/bookings/cancel"
	retrievalErrorText = "Unable to retrieve information at the moment. Please try again."
)

// formatRAGAnswer builds a provider-info answer from ranked retrieval results.
// results must not be empty; the top result drives the answer.
func formatRAGAnswer(query string, results []models.RetrievalResult) *models.Answer {
	top := results[0]
	contact := top.ContactInfo

	var text string
	switch {
	case contactKeywords.MatchedBy(query):
		text = formatContactAnswer(contact)
	case addressKeywords.MatchedBy(query):
		text = formatAddressAnswer(contact)
	case emailKeywords.MatchedBy(query):
		text = formatEmailAnswer(contact)
	case policyKeywords.MatchedBy(query):
		text = formatPolicyAnswer(top)
	default:
		text = formatComprehensiveAnswer(contact)
	}

	sources := make([]string, 0, len(results))
	for _, r := range results {
		sources = append(sources, r.Provider)
	}

	return &models.Answer{
		Answer:     text,
		QueryType:  models.QueryTypeProviderInfo,
		Provider:   contact.Provider,
		Confidence: top.Similarity,
		Sources:    sources,
		RAGUsed:    true,
	}
}

func formatContactAnswer(c models.ContactInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Contact Information:\n\n", c.Provider)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	if c.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", c.Email)
	}
	if c.Phone == "" && c.Email == "" {
		b.WriteString("Contact details not available in records.\n")
	}
	return strings.TrimSpace(b.String())
}

func formatAddressAnswer(c models.ContactInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Location:\n\n", c.Provider)
	if c.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", c.Address)
	} else {
		b.WriteString("Address not available in records.\n")
	}
	return strings.TrimSpace(b.String())
}

func formatEmailAnswer(c models.ContactInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Email:\n\n", c.Provider)
	if c.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", c.Email)
	} else {
		b.WriteString("Email not available in records.\n")
	}
	return strings.TrimSpace(b.String())
}

func formatPolicyAnswer(r models.RetrievalResult) string {
	var lines []string
	for _, line := range strings.Split(r.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !policyLineWords.MatchedBy(strings.ToLower(line)) {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxPolicyLines {
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Privacy Policy:\n\n", r.ContactInfo.Provider)
	if len(lines) > 0 {
		b.WriteString(strings.Join(lines, "\n"))
	} else {
		b.WriteString("Privacy policy details not available. Please check their website.\n")
	}
	if r.ContactInfo.Website != "" {
		fmt.Fprintf(&b, "\n\nWebsite: %s", r.ContactInfo.Website)
	}
	return strings.TrimSpace(b.String())
}

func formatComprehensiveAnswer(c models.ContactInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Information:\n\n", c.Provider)
	if c.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", c.Address)
	}
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	if c.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", c.Email)
	}
	if c.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", c.Website)
	}
	return strings.TrimSpace(b.String())
}

// routeHelpAnswer is returned when a route query does not name two districts
func routeHelpAnswer(districts []string) *models.Answer {
	return &models.Answer{
		Answer:             "Please specify both origin and destination. Available districts: " + strings.Join(districts, ", "),
		QueryType:          models.QueryTypeRouteSearch,
		AvailableDistricts: districts,
	}
}

func noRoutesAnswer(from, to string, maxPrice *int) *models.Answer {
	text := fmt.Sprintf("No buses found from %s to %s", from, to)
	if maxPrice != nil {
		text += fmt.Sprintf(" under %d taka", *maxPrice)
	}
	return &models.Answer{
		Answer:    text,
		QueryType: models.QueryTypeRouteSearch,
		From:      from,
		To:        to,
		MaxPrice:  maxPrice,
		Results:   []models.RouteResult{},
	}
}

// priceSearchAnswer lists up to ten priced routes; Results carries all of them
func priceSearchAnswer(from, to string, maxPrice *int, routes []models.Route) *models.Answer {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d buses from %s to %s", len(routes), from, to)
	if maxPrice != nil {
		fmt.Fprintf(&b, " under ৳%d", *maxPrice)
	}
	b.WriteString(":\n\n")

	results := make([]models.RouteResult, 0, len(routes))
	for i, r := range routes {
		if i < maxPriceListLines {
			fmt.Fprintf(&b, "%d. %s: %s - ৳%d\n", i+1, r.Provider, r.DroppingPoint, r.Price)
		}
		results = append(results, models.RouteResult{
			Provider: r.Provider,
			Price:    r.Price,
			Route:    r.DroppingPoint,
		})
	}

	return &models.Answer{
		Answer:    strings.TrimSpace(b.String()),
		QueryType: models.QueryTypePriceSearch,
		From:      from,
		To:        to,
		MaxPrice:  maxPrice,
		Results:   results,
	}
}

func providerListingAnswer(from, to string, routes []models.Route) *models.Answer {
	providers := distinctProviders(routes)

	text := fmt.Sprintf("Bus providers from %s to %s:\n\n%s\n\nTotal routes available: %d",
		from, to, strings.Join(providers, ", "), len(routes))

	return &models.Answer{
		Answer:      text,
		QueryType:   models.QueryTypeRouteSearch,
		From:        from,
		To:          to,
		Providers:   providers,
		TotalRoutes: len(routes),
	}
}

// distinctProviders returns provider names in first-seen order
func distinctProviders(routes []models.Route) []string {
	seen := make(map[string]struct{}, len(routes))
	var providers []string
	for _, r := range routes {
		if _, ok := seen[r.Provider]; ok {
			continue
		}
		seen[r.Provider] = struct{}{}
		providers = append(providers, r.Provider)
	}
	return providers
}

func cancellationAnswer(from, to, date string) *models.Answer {
	var b strings.Builder
	b.WriteString("To cancel your booking:\n\n")
	fmt.Fprintf(&b, "Use: POST %s\n\n", cancelEndpoint)
	b.WriteString("Required information:\n")
	b.WriteString("• Phone number\n")
	b.WriteString("• Travel date\n")
	b.WriteString("• Bus provider\n")
	b.WriteString("• Origin and destination districts\n")
	if from != "" && to != "" {
		fmt.Fprintf(&b, "\nYour route: %s → %s", from, to)
	}
	if date != "" {
		fmt.Fprintf(&b, "\nTravel date: %s", date)
	}

	return &models.Answer{
		Answer:    strings.TrimSpace(b.String()),
		QueryType: models.QueryTypeCancellation,
		Endpoint:  cancelEndpoint,
		From:      from,
		To:        to,
		Date:      date,
	}
}

func helpAnswer(providers, districts []string) *models.Answer {
	text := "I can help you with:\n\n" +
		"• Bus routes and prices\n" +
		"• Provider contact information\n" +
		"• Booking cancellations\n\n" +
		"Available providers: " + strings.Join(providers, ", ") + "\n" +
		"Available districts: " + strings.Join(districts, ", ")

	return &models.Answer{
		Answer:             text,
		QueryType:          models.QueryTypeHelp,
		AvailableProviders: providers,
		AvailableDistricts: districts,
	}
}

// noResultsAnswer is returned when provider retrieval finds nothing
func noResultsAnswer(provider string, providers []string) *models.Answer {
	text := "No matching information found. Please specify a provider."
	if provider != "" {
		text = fmt.Sprintf("No information found for %s.", provider)
	}
	return &models.Answer{
		Answer:             text + "\n\nAvailable providers: " + strings.Join(providers, ", "),
		QueryType:          models.QueryTypeProviderInfo,
		AvailableProviders: providers,
		RAGUsed:            true,
	}
}

func retrievalErrorAnswer() *models.Answer {
	return &models.Answer{
		Answer:    retrievalErrorText,
		QueryType: models.QueryTypeError,
		RAGUsed:   true,
	}
}
