package service

import (
	"strings"

	"busbooking-backend/models"
)

// ExtractContactInfo parses labeled lines of a provider document.
// The first matching rule per line wins and later lines overwrite earlier values.
func ExtractContactInfo(content, provider string) models.ContactInfo {
	info := models.ContactInfo{Provider: provider}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "Address:") || strings.Contains(line, "Official Address:"):
			info.Address = afterColon(line, "")
		case strings.Contains(line, "Contact") || strings.Contains(line, "Phone") || strings.Contains(line, "Tel:"):
			info.Phone = afterColon(line, line)
		case strings.Contains(line, "Email:"):
			info.Email = afterColon(line, "")
		case strings.Contains(line, "Link:") || strings.Contains(strings.ToLower(line), "website"):
			info.Website = afterColon(line, "")
		}
	}

	return info
}

// afterColon returns the trimmed text after the first colon, or fallback when there is none
func afterColon(line, fallback string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return fallback
	}
	return strings.TrimSpace(value)
}
