package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"busbooking-backend/models"
)

func TestExtractContactInfo(t *testing.T) {
	info := ExtractContactInfo(greenLineDoc, "Green Line")

	assert.Equal(t, models.ContactInfo{
		Provider: "Green Line",
		Address:  "9/2 Outer Circular Road, Dhaka",
		Phone:    "01730-060000",
		Email:    "info@greenlinebd.com",
		Website:  "https://greenlinebd.com",
	}, info)
}

func TestExtractContactInfo_Rules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    models.ContactInfo
	}{
		{
			name:    "empty document",
			content: "",
			want:    models.ContactInfo{Provider: "P"},
		},
		{
			name:    "phone line without colon keeps whole line",
			content: "  Contact us at the counter  ",
			want:    models.ContactInfo{Provider: "P", Phone: "Contact us at the counter"},
		},
		{
			name:    "tel label",
			content: "Tel: 09613",
			want:    models.ContactInfo{Provider: "P", Phone: "09613"},
		},
		{
			name:    "website without colon is empty",
			content: "Visit our Website for offers",
			want:    models.ContactInfo{Provider: "P"},
		},
		{
			name:    "first rule wins per line",
			content: "Phone Email: x@y.z",
			want:    models.ContactInfo{Provider: "P", Phone: "x@y.z"},
		},
		{
			name:    "later lines overwrite",
			content: "Email: old@y.z\nEmail: new@y.z",
			want:    models.ContactInfo{Provider: "P", Email: "new@y.z"},
		},
		{
			name:    "value keeps later colons",
			content: "Link: https://example.com:8080/x",
			want:    models.ContactInfo{Provider: "P", Website: "https://example.com:8080/x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractContactInfo(tt.content, "P"))
		})
	}
}
