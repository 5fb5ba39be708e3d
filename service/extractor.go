package service

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	priceRe = regexp.MustCompile(`(?i)(\d+)\s*taka`)
	dateRe  = regexp.MustCompile(`(?i)(\d+)\s*(st|nd|rd|th)?\s*(january|february|march|april|may|june|july|august|september|october|november|december)`)
)

// districtAliases maps alternative spellings to the canonical district spelling
var districtAliases = strings.NewReplacer("chittagong", "chattogram")

// EntityExtractor pulls structured values out of a lower-cased query.
// A missing entity is reported as empty or false, never as an error.
type EntityExtractor interface {
	ExtractDistricts(query string) (from, to string)
	ExtractPrice(query string) (int, bool)
	ExtractDate(query string) (string, bool)
	ExtractProviderName(query string) (string, bool)
}

// VocabularyExtractor matches queries against fixed district and provider vocabularies
type VocabularyExtractor struct {
	districts []string
	providers []string
}

// NewVocabularyExtractor creates an extractor over the given vocabularies.
// Scan order follows the order of the slices.
func NewVocabularyExtractor(districts, providers []string) *VocabularyExtractor {
	return &VocabularyExtractor{
		districts: append([]string(nil), districts...),
		providers: append([]string(nil), providers...),
	}
}

// ExtractDistricts returns the first two vocabulary districts contained in query,
// in vocabulary order. Further matches are ignored.
func (e *VocabularyExtractor) ExtractDistricts(query string) (from, to string) {
	normalized := districtAliases.Replace(strings.ToLower(query))
	for _, district := range e.districts {
		if !strings.Contains(normalized, strings.ToLower(district)) {
			continue
		}
		switch {
		case from == "":
			from = district
		case to == "":
			to = district
		default:
			return from, to
		}
	}
	return from, to
}

// ExtractPrice returns the amount of the first "<digits> taka" phrase
func (e *VocabularyExtractor) ExtractPrice(query string) (int, bool) {
	m := priceRe.FindStringSubmatch(query)
	if m == nil {
		return 0, false
	}
	price, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return price, true
}

// ExtractDate returns the first "<day><suffix> <month>" phrase verbatim
func (e *VocabularyExtractor) ExtractDate(query string) (string, bool) {
	m := dateRe.FindString(query)
	return m, m != ""
}

// ExtractProviderName returns the first vocabulary provider contained in query
func (e *VocabularyExtractor) ExtractProviderName(query string) (string, bool) {
	lowered := strings.ToLower(query)
	for _, provider := range e.providers {
		if provider != "" && strings.Contains(lowered, strings.ToLower(provider)) {
			return provider, true
		}
	}
	return "", false
}
