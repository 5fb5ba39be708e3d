package main

import (
	"context"
	"fmt"
	"log"

	"busbooking-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Enable pgvector extension (if not already enabled)
	_, err = pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		log.Printf("Warning: Failed to create pgvector extension: %v", err)
	} else {
		log.Println("✓ pgvector extension enabled")
	}

	// Create bookings table
	bookingsSQL := `
CREATE TABLE IF NOT EXISTS bookings (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    phone VARCHAR(20) NOT NULL,
    bus_provider VARCHAR(100) NOT NULL,
    from_district VARCHAR(100) NOT NULL,
    to_district VARCHAR(100) NOT NULL,
    dropping_point VARCHAR(100) NOT NULL,
    price NUMERIC(10, 2) NOT NULL CHECK (price > 0),
    travel_date DATE NOT NULL,
    travel_time VARCHAR(10) NOT NULL,
    booking_date TIMESTAMP DEFAULT NOW(),
    status VARCHAR(20) NOT NULL DEFAULT 'confirmed' CHECK (status IN ('confirmed', 'canceled'))
);`

	_, err = pool.Exec(ctx, bookingsSQL)
	if err != nil {
		log.Fatalf("Failed to create bookings table: %v", err)
	}
	log.Println("✓ Created bookings table")

	// Create provider_documents table
	documentsSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS provider_documents (
    id BIGSERIAL PRIMARY KEY,
    provider VARCHAR(100) NOT NULL,
    source VARCHAR(255) NOT NULL UNIQUE,
    content TEXT NOT NULL,
    embedding vector(%d),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);`, cfg.Gemini.Dimension)

	_, err = pool.Exec(ctx, documentsSQL)
	if err != nil {
		log.Fatalf("Failed to create provider_documents table: %v", err)
	}
	log.Println("✓ Created provider_documents table")

	// Create indexes
	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "Booking lookup by phone",
			sql:  "CREATE INDEX IF NOT EXISTS idx_bookings_phone ON bookings(phone);",
		},
		{
			name: "Confirmed booking lookup by travel details",
			sql: `CREATE INDEX IF NOT EXISTS idx_bookings_trip ON bookings(phone, travel_date, bus_provider)
    WHERE status = 'confirmed';`,
		},
		{
			name: "Provider document filtering",
			sql:  "CREATE INDEX IF NOT EXISTS idx_provider_documents_provider ON provider_documents(LOWER(provider));",
		},
		{
			name: "Vector similarity search (HNSW)",
			sql: `CREATE INDEX IF NOT EXISTS idx_provider_documents_embedding ON provider_documents
USING hnsw (embedding vector_cosine_ops)
WITH (m = 16, ef_construction = 64);`,
		},
	}

	for _, idx := range indexes {
		_, err = pool.Exec(ctx, idx.sql)
		if err != nil {
			log.Printf("Warning: Failed to create index %s: %v", idx.name, err)
		} else {
			log.Printf("✓ Created index: %s", idx.name)
		}
	}

	fmt.Println("\n✅ Database schema created successfully!")
	fmt.Println("   Tables: bookings, provider_documents")
	fmt.Printf("   Indexes: %d indexes created\n", len(indexes))
}
