package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordSet_MatchedBy(t *testing.T) {
	assert.True(t, CancellationKeywords.MatchedBy("i want a refund"))
	assert.False(t, CancellationKeywords.MatchedBy("book a ticket"))
	assert.False(t, KeywordSet(nil).MatchedBy("anything"))
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier([]string{"Green Line", "Hanif", "Shyamoli"})

	tests := []struct {
		query string
		want  Intent
	}{
		{"what is green line's phone number?", IntentProviderInfo},
		{"tell me about hanif", IntentProviderInfo},
		{"hanif contact from dhaka", IntentProviderInfo},
		{"office address please", IntentProviderInfo},
		{"bus from dhaka to sylhet under 300 taka", IntentRoutePrice},
		{"hanif dhaka to rajshahi", IntentRoutePrice},
		{"contact for the dhaka to sylhet bus", IntentRoutePrice},
		{"cheap tickets available", IntentRoutePrice},
		{"i want a refund from green line", IntentCancellation},
		{"how do i cancel my hanif phone booking", IntentCancellation},
		{"asdf random text", IntentAmbiguous},
		{"", IntentAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.query))
		})
	}
}

func TestClassifier_CancellationWinsRegardlessOfContent(t *testing.T) {
	c := NewClassifier([]string{"Green Line"})
	others := []string{
		"",
		"green line phone number",
		"bus from dhaka to sylhet under 500 taka",
		"privacy policy website",
	}
	for _, keyword := range []string{"cancel", "cancellation", "refund"} {
		for _, other := range others {
			query := strings.ToLower(strings.ToUpper(keyword) + " " + other)
			assert.Equal(t, IntentCancellation, c.Classify(query), query)
		}
	}
}

func TestClassifier_ProviderWithoutRouteKeyword(t *testing.T) {
	providers := []string{"Green Line", "Hanif", "Shyamoli"}
	c := NewClassifier(providers)
	for _, p := range providers {
		for _, tmpl := range []string{"%s", "is %s good", "%s reviews please"} {
			query := strings.ToLower(strings.ReplaceAll(tmpl, "%s", p))
			assert.Equal(t, IntentProviderInfo, c.Classify(query), query)
		}
	}
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "cancellation", IntentCancellation.String())
	assert.Equal(t, "provider_info", IntentProviderInfo.String())
	assert.Equal(t, "route_price", IntentRoutePrice.String())
	assert.Equal(t, "ambiguous", IntentAmbiguous.String())
}
