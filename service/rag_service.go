package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"busbooking-backend/metrics"
	"busbooking-backend/models"
)

var (
	ErrQueryTooShort           = errors.New("query is too short")
	ErrProviderNotRecognized   = errors.New("provider not recognized")
	ErrNoRetrievalResults      = errors.New("no provider information found")
	ErrRetrievalBackendFailure = errors.New("semantic retrieval failed")
)

const (
	defaultMinQueryLength     = 3
	defaultRetrievalTopK      = 3
	defaultAmbiguousThreshold = 0.5
)

// StructuredStore answers exact district, provider and route lookups
type StructuredStore interface {
	GetDistricts() []string
	GetProviders() []models.Provider
	SearchRoutes(from, to string, maxPrice *int) []models.Route
}

// DocumentSearcher ranks provider documents against a query.
// An empty providerFilter searches all providers.
type DocumentSearcher interface {
	SemanticSearch(ctx context.Context, query, providerFilter string, k int) ([]models.ScoredDocument, error)
}

// RAGService routes free-text queries to structured lookups or semantic retrieval.
// Vocabularies are captured at construction and only read afterwards, so a
// single instance serves concurrent queries.
type RAGService struct {
	store              StructuredStore
	searcher           DocumentSearcher
	extractor          EntityExtractor
	classifier         *Classifier
	logger             *zap.Logger
	minQueryLength     int
	topK               int
	ambiguousThreshold float64

	providerNames []string
	districts     []string
}

// RAGServiceOption is a functional option for RAGService
type RAGServiceOption func(*RAGService)

// WithDocumentSearcher sets the semantic retrieval backend
func WithDocumentSearcher(searcher DocumentSearcher) RAGServiceOption {
	return func(s *RAGService) {
		s.searcher = searcher
	}
}

// WithEntityExtractor replaces the vocabulary-based entity extractor
func WithEntityExtractor(extractor EntityExtractor) RAGServiceOption {
	return func(s *RAGService) {
		s.extractor = extractor
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) RAGServiceOption {
	return func(s *RAGService) {
		s.logger = logger
	}
}

// WithMinQueryLength sets the minimum accepted query length in characters
func WithMinQueryLength(n int) RAGServiceOption {
	return func(s *RAGService) {
		s.minQueryLength = n
	}
}

// WithRetrievalTopK sets how many documents provider-info queries retrieve
func WithRetrievalTopK(k int) RAGServiceOption {
	return func(s *RAGService) {
		s.topK = k
	}
}

// WithAmbiguousThreshold sets the similarity an unclassified query needs to be
// answered from retrieval instead of the help message
func WithAmbiguousThreshold(threshold float64) RAGServiceOption {
	return func(s *RAGService) {
		s.ambiguousThreshold = threshold
	}
}

// NewRAGService creates a new RAG service over the structured store
func NewRAGService(store StructuredStore, opts ...RAGServiceOption) *RAGService {
	s := &RAGService{
		store:              store,
		logger:             zap.NewNop(),
		minQueryLength:     defaultMinQueryLength,
		topK:               defaultRetrievalTopK,
		ambiguousThreshold: defaultAmbiguousThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.districts = store.GetDistricts()
	for _, p := range store.GetProviders() {
		s.providerNames = append(s.providerNames, p.Name)
	}

	s.classifier = NewClassifier(s.providerNames)
	if s.extractor == nil {
		s.extractor = NewVocabularyExtractor(s.districts, s.providerNames)
	}
	return s
}

// ProviderNames returns the known provider names
func (s *RAGService) ProviderNames() []string {
	return append([]string(nil), s.providerNames...)
}

// Districts returns the known district names
func (s *RAGService) Districts() []string {
	return append([]string(nil), s.districts...)
}

// Query answers a free-text question. Retrieval failures are reported in the
// answer with query type "error"; only invalid input is returned as an error.
func (s *RAGService) Query(ctx context.Context, text string) (*models.Answer, error) {
	start := time.Now()

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < s.minQueryLength {
		return nil, ErrQueryTooShort
	}
	query := strings.ToLower(trimmed)

	intent := s.classifier.Classify(query)

	var answer *models.Answer
	switch intent {
	case IntentCancellation:
		answer = s.handleCancellation(query)
	case IntentProviderInfo:
		answer = s.handleProviderInfo(ctx, query)
	case IntentRoutePrice:
		answer = s.handleRoute(query)
	default:
		answer = s.handleAmbiguous(ctx, query)
	}

	elapsed := time.Since(start)
	metrics.RAGQueries.WithLabelValues(string(answer.QueryType)).Inc()
	metrics.RAGQueryDuration.Observe(elapsed.Seconds())

	s.logger.Debug("query answered",
		zap.String("intent", intent.String()),
		zap.String("query_type", string(answer.QueryType)),
		zap.Duration("elapsed", elapsed),
	)
	return answer, nil
}

// ProviderInfo returns the best matching document for a named provider.
// The name is matched case-insensitively against the known providers.
func (s *RAGService) ProviderInfo(ctx context.Context, name string) (*models.RetrievalResult, error) {
	provider, ok := s.canonicalProvider(name)
	if !ok {
		return nil, ErrProviderNotRecognized
	}

	results, err := s.retrieve(ctx, strings.ToLower(provider)+" contact information", provider, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoRetrievalResults
	}
	return &results[0], nil
}

func (s *RAGService) canonicalProvider(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, p := range s.providerNames {
		if strings.EqualFold(p, name) {
			return p, true
		}
	}
	return "", false
}

func (s *RAGService) handleCancellation(query string) *models.Answer {
	from, to := s.extractor.ExtractDistricts(query)
	date, _ := s.extractor.ExtractDate(query)
	return cancellationAnswer(from, to, date)
}

func (s *RAGService) handleProviderInfo(ctx context.Context, query string) *models.Answer {
	provider, _ := s.extractor.ExtractProviderName(query)

	results, err := s.retrieve(ctx, query, provider, s.topK)
	if err != nil {
		s.logger.Warn("provider retrieval failed",
			zap.String("provider", provider),
			zap.Error(err),
		)
		return retrievalErrorAnswer()
	}
	if len(results) == 0 {
		return noResultsAnswer(provider, s.providerNames)
	}
	return formatRAGAnswer(query, results)
}

func (s *RAGService) handleRoute(query string) *models.Answer {
	from, to := s.extractor.ExtractDistricts(query)

	var maxPrice *int
	if price, ok := s.extractor.ExtractPrice(query); ok {
		maxPrice = &price
	}

	if from == "" || to == "" {
		return routeHelpAnswer(s.districts)
	}

	routes := s.store.SearchRoutes(from, to, maxPrice)
	if len(routes) == 0 {
		return noRoutesAnswer(from, to, maxPrice)
	}

	if maxPrice != nil || PriceKeywords.MatchedBy(query) {
		return priceSearchAnswer(from, to, maxPrice, routes)
	}
	return providerListingAnswer(from, to, routes)
}

func (s *RAGService) handleAmbiguous(ctx context.Context, query string) *models.Answer {
	results, err := s.retrieve(ctx, query, "", 1)
	if err != nil {
		s.logger.Warn("fallback retrieval failed", zap.Error(err))
		return retrievalErrorAnswer()
	}
	if len(results) > 0 && results[0].Similarity > s.ambiguousThreshold {
		return formatRAGAnswer(query, results)
	}
	return helpAnswer(s.providerNames, s.districts)
}

// retrieve runs a semantic search and converts distances into similarities
func (s *RAGService) retrieve(ctx context.Context, query, provider string, k int) ([]models.RetrievalResult, error) {
	if s.searcher == nil {
		metrics.RetrievalFailures.Inc()
		return nil, fmt.Errorf("%w: document searcher not set", ErrRetrievalBackendFailure)
	}

	docs, err := s.searcher.SemanticSearch(ctx, query, provider, k)
	if err != nil {
		metrics.RetrievalFailures.Inc()
		return nil, fmt.Errorf("%w: %w", ErrRetrievalBackendFailure, err)
	}

	results := make([]models.RetrievalResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, models.RetrievalResult{
			Provider:    doc.Provider,
			Content:     doc.Content,
			Similarity:  similarity(doc.Distance),
			ContactInfo: ExtractContactInfo(doc.Content, doc.Provider),
			Source:      doc.Source,
		})
	}
	return results, nil
}

// similarity converts a distance into a score in [0,1]
func similarity(distance float64) float64 {
	sim := 1 - distance
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
