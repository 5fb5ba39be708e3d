package models

import "time"

// ProviderDocument represents the free-text description of a bus provider
type ProviderDocument struct {
	Provider string `json:"provider"`
	Source   string `json:"source"`
	Content  string `json:"content"`
}

// StoredProviderDocument is a provider document persisted with its embedding
type StoredProviderDocument struct {
	ProviderDocument
	Embedding []float64 `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScoredDocument is a raw hit from the semantic retrieval backend.
// Distance is in the backend's native scale, 0 meaning identical.
type ScoredDocument struct {
	ProviderDocument
	Distance float64 `json:"distance"`
}

// ContactInfo is the structured view over a provider document
type ContactInfo struct {
	Provider string `json:"provider"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Website  string `json:"website"`
}

// RetrievalResult is a provider document matched for a query, with its similarity in [0,1]
type RetrievalResult struct {
	Provider    string      `json:"provider"`
	Content     string      `json:"content"`
	Similarity  float64     `json:"similarity"`
	ContactInfo ContactInfo `json:"contact_info"`
	Source      string      `json:"source"`
}
