package main

import (
	"context"
	"errors"
	"log"
	"time"

	"busbooking-backend/cache"
	"busbooking-backend/config"
	"busbooking-backend/embedding"
	"busbooking-backend/handlers"
	"busbooking-backend/logger"
	"busbooking-backend/repository"
	"busbooking-backend/retrieval"
	"busbooking-backend/service"
	"busbooking-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	gin.SetMode(cfg.Server.Mode)
	ctx := context.Background()

	// Initialize storage
	fileStorage, err := storage.NewStorage(storage.StorageConfig{
		Type:         storage.StorageType(cfg.Storage.Type),
		LocalPath:    cfg.Storage.LocalPath,
		S3Bucket:     cfg.Storage.S3Bucket,
		S3Region:     cfg.Storage.S3Region,
		AWSAccessKey: cfg.Storage.AWSAccessKey,
		AWSSecretKey: cfg.Storage.AWSSecretKey,
	})
	if err != nil {
		zlog.Fatal("failed to initialize storage", zap.Error(err))
	}
	zlog.Info("storage initialized", zap.String("type", cfg.Storage.Type))

	// Structured bus data
	busRepo, err := repository.LoadBusRepository(ctx, fileStorage, cfg.Data.BusDataKey)
	if err != nil {
		zlog.Fatal("failed to load bus data", zap.String("key", cfg.Data.BusDataKey), zap.Error(err))
	}
	zlog.Info("bus data loaded",
		zap.Int("districts", len(busRepo.GetDistricts())),
		zap.Int("providers", len(busRepo.GetProviders())),
	)

	// Postgres is optional: bookings and the pgvector backend need it
	db, err := initPostgres(ctx, cfg.Database.URL)
	if err != nil {
		zlog.Warn("postgres unavailable, booking endpoints disabled", zap.Error(err))
	} else {
		defer db.Close()
	}

	searcher, closeSearcher, err := initRetrieval(ctx, cfg, fileStorage, db, zlog)
	if err != nil {
		zlog.Warn("semantic retrieval unavailable, provider questions will degrade", zap.Error(err))
	}
	if closeSearcher != nil {
		defer closeSearcher()
	}

	ragOpts := []service.RAGServiceOption{
		service.WithLogger(zlog),
		service.WithMinQueryLength(cfg.Query.MinLength),
		service.WithRetrievalTopK(cfg.Retrieval.TopK),
		service.WithAmbiguousThreshold(cfg.Retrieval.AmbiguousThreshold),
	}
	if searcher != nil {
		ragOpts = append(ragOpts, service.WithDocumentSearcher(searcher))
	}
	ragService := service.NewRAGService(busRepo, ragOpts...)

	var querier service.Querier = ragService
	if cfg.Redis.Address != "" {
		answerCache := cache.NewRedisAnswerCache(cache.NewRedisClient(cfg.Redis), cfg.Redis.TTL)
		defer answerCache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := answerCache.Ping(pingCtx); err != nil {
			zlog.Warn("redis unreachable, answer cache disabled", zap.String("address", cfg.Redis.Address), zap.Error(err))
		} else {
			querier = service.NewCachedRAGService(ragService, answerCache, zlog)
			zlog.Info("answer cache enabled", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", cfg.Redis.TTL))
		}
		cancel()
	}

	// Initialize handlers
	rt := handlers.Router{
		Query:    handlers.NewQueryHandler(querier, zlog),
		Provider: handlers.NewProviderHandler(ragService, zlog),
		Search:   handlers.NewSearchHandler(service.NewSearchService(busRepo)),
	}
	if db != nil {
		bookingService := service.NewBookingService(
			service.WithBookingStore(repository.NewBookingRepository(db)),
			service.WithRouteChecker(busRepo),
			service.WithBookingLogger(zlog),
		)
		rt.Booking = handlers.NewBookingHandler(bookingService, zlog)
	}

	r := rt.NewEngine(zlog)

	zlog.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// initRetrieval builds the configured document searcher. The returned func releases its resources.
func initRetrieval(
	ctx context.Context,
	cfg *config.Config,
	store storage.Storage,
	db *pgxpool.Pool,
	zlog *zap.Logger,
) (service.DocumentSearcher, func(), error) {
	switch cfg.Retrieval.Backend {
	case config.RetrievalBackendPgVector:
		if db == nil {
			return nil, nil, errPgVectorWithoutDatabase
		}
		embedder, err := embedding.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbeddingModel, cfg.Gemini.Dimension)
		if err != nil {
			return nil, nil, err
		}
		docRepo := repository.NewProviderDocumentRepository(db, cfg.Gemini.Dimension)
		zlog.Info("pgvector retrieval enabled", zap.String("model", cfg.Gemini.EmbeddingModel))
		return retrieval.NewPgVectorRetriever(embedder, docRepo), func() { _ = embedder.Close() }, nil

	default:
		docs, err := repository.LoadProviderDocuments(ctx, store, cfg.Data.ProviderDocsPrefix)
		if err != nil {
			return nil, nil, err
		}
		index, err := retrieval.NewMemoryIndex(ctx, embedding.NewTFIDFEmbedder(), docs)
		if err != nil {
			return nil, nil, err
		}
		zlog.Info("in-memory retrieval enabled", zap.Int("documents", index.Len()))
		return index, nil, nil
	}
}

var errPgVectorWithoutDatabase = errors.New("pgvector retrieval requires a reachable database")
