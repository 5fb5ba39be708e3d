package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"busbooking-backend/config"
	"busbooking-backend/storage"
)

func main() {
	dir := flag.String("dir", "./data", "local directory holding data.json and provider_docs/")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
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

	ctx := context.Background()
	uploaded := 0
	err = filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(*dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := fileStorage.Upload(ctx, key, f); err != nil {
			return err
		}
		uploaded++
		log.Printf("✓ Uploaded %s", key)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to upload data: %v", err)
	}

	log.Printf("\n✅ Uploaded %d files to %s storage", uploaded, cfg.Storage.Type)
}
