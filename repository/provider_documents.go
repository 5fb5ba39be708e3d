package repository

import (
	"context"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"busbooking-backend/models"
	"busbooking-backend/storage"
)

const providerDocExt = ".txt"

// LoadProviderDocuments reads every provider text document stored under prefix
func LoadProviderDocuments(ctx context.Context, store storage.Storage, prefix string) ([]models.ProviderDocument, error) {
	keys, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider documents: %w", err)
	}

	var docs []models.ProviderDocument
	for _, key := range keys {
		if path.Ext(key) != providerDocExt {
			continue
		}
		raw, err := storage.ReadAll(ctx, store, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read provider document: %w", err)
		}
		source := path.Base(key)
		docs = append(docs, models.ProviderDocument{
			Provider: ProviderNameFromFile(source),
			Source:   source,
			Content:  string(raw),
		})
	}

	return docs, nil
}

// ProviderNameFromFile derives a provider name from its document file name,
// e.g. "green_line.txt" becomes "Green Line".
func ProviderNameFromFile(fileName string) string {
	name := strings.TrimSuffix(path.Base(fileName), providerDocExt)
	name = strings.ReplaceAll(name, "_", " ")
	return cases.Title(language.English).String(name)
}
