package main

import (
	"context"
	"flag"
	"log"
	"math"
	"time"

	"busbooking-backend/config"
	"busbooking-backend/embedding"
	"busbooking-backend/models"
	"busbooking-backend/repository"
	"busbooking-backend/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

const batchSize = 100 // Google's API limit

func main() {
	force := flag.Bool("force", false, "re-embed documents that are already stored")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Gemini.APIKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	// Connect to database
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Verify table exists
	var tableExists bool
	err = pool.QueryRow(ctx, "SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'provider_documents')").Scan(&tableExists)
	if err != nil {
		log.Fatalf("Failed to check table existence: %v", err)
	}
	if !tableExists {
		log.Fatal("provider_documents table does not exist. Please run: go run ./cmd/create-schema")
	}

	fileStorage, err := storage.NewStorage(storage.StorageConfig{
		Type:         storage.StorageType(cfg.Storage.Type),
		LocalPath:    cfg.Storage.LocalPath,
		S3Bucket:     cfg.Storage.S3Bucket,
		S3Region:     cfg.Storage.S3Region,
		AWSAccessKey: cfg.Storage.AWSAccessKey,
		AWSSecretKey: cfg.Storage.AWSSecretKey,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	docs, err := repository.LoadProviderDocuments(ctx, fileStorage, cfg.Data.ProviderDocsPrefix)
	if err != nil {
		log.Fatalf("Failed to load provider documents: %v", err)
	}
	log.Printf("📄 Found %d provider documents", len(docs))

	embedder, err := embedding.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbeddingModel, cfg.Gemini.Dimension)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini: %v", err)
	}
	defer embedder.Close()

	docRepo := repository.NewProviderDocumentRepository(pool, cfg.Gemini.Dimension)

	pending := make([]models.ProviderDocument, 0, len(docs))
	for _, doc := range docs {
		if !*force {
			exists, err := docRepo.ExistsBySource(ctx, doc.Source)
			if err != nil {
				log.Printf("   ⚠️  Error checking %s: %v", doc.Source, err)
			} else if exists {
				log.Printf("   ⏭️  Skipping %s (already embedded)", doc.Source)
				continue
			}
		}
		pending = append(pending, doc)
	}

	stored := 0
	for i := 0; i < len(pending); i += batchSize {
		end := i + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[i:end]

		texts := make([]string, len(batch))
		for j, doc := range batch {
			texts[j] = doc.Content
		}

		log.Printf("🔄 Generating embeddings for %d documents...", len(batch))
		vectors, err := embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			log.Printf("❌ Error generating embeddings: %v", err)
			continue
		}

		for j, doc := range batch {
			normalizeEmbedding(vectors[j])
			err := docRepo.Upsert(ctx, &models.StoredProviderDocument{
				ProviderDocument: doc,
				Embedding:        vectors[j],
			})
			if err != nil {
				log.Printf("   ❌ Error storing %s: %v", doc.Source, err)
				continue
			}
			stored++
			log.Printf("   ✅ Stored %s (%s)", doc.Source, doc.Provider)
		}

		// Rate limiting
		if end < len(pending) {
			time.Sleep(2 * time.Second)
		}
	}

	log.Printf("\n✅ Embedding build complete! %d of %d documents stored", stored, len(pending))
}

func normalizeEmbedding(embedding []float64) {
	var sumSq float64
	for _, v := range embedding {
		sumSq += v * v
	}
	if sumSq == 0 {
		return
	}

	norm := math.Sqrt(sumSq)
	for i := range embedding {
		embedding[i] /= norm
	}
}
