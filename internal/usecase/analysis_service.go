package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listingcheck/backend/internal/domain"
	"github.com/listingcheck/backend/internal/infrastructure/metrics"
)

// Minimum length of a listing URL worth analyzing
const minListingURLLength = 10

var httpSchemeRegex = regexp.MustCompile(`^https?://`)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheTTL time.Duration
}

// AnalysisService verifies a listing URL against other platforms and
// classifies every match it finds.
// Flow: validate -> cache -> demo data or provider -> drop same-domain matches -> save -> cache
type AnalysisService struct {
	cache      domain.CacheRepository
	provider   domain.AnalysisProvider
	repository domain.AnalysisRepository
	classifier *ListingStatusClassifier
	logger     *zap.Logger
	cacheTTL   time.Duration
	now        func() time.Time
}

// NewAnalysisService creates a new analysis service. repository may be nil,
// in which case analyses are not persisted.
func NewAnalysisService(
	cache domain.CacheRepository,
	provider domain.AnalysisProvider,
	repository domain.AnalysisRepository,
	logger *zap.Logger,
	config AnalysisServiceConfig,
) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AnalysisService{
		cache:      cache,
		provider:   provider,
		repository: repository,
		classifier: NewListingStatusClassifier(),
		logger:     logger,
		cacheTTL:   cacheTTL,
		now:        time.Now,
	}
}

// Classify classifies a batch of candidates, keeping input order
func (s *AnalysisService) Classify(candidates []domain.MatchCandidate) []domain.ClassifiedMatch {
	matches := classifyMatches(s.classifier, candidates)
	recordVerdicts(matches)
	return matches
}

// AnalyzeListing verifies the listing at listingURL and classifies its matches
func (s *AnalysisService) AnalyzeListing(ctx context.Context, listingURL string) (*domain.ClassifiedAnalysis, error) {
	listingURL = strings.TrimSpace(listingURL)
	if !isAnalyzableURL(listingURL) {
		metrics.AnalysesFailed.WithLabelValues("invalid_url").Inc()
		return nil, domain.ErrInvalidListingURL
	}

	log := s.logger.With(zap.String("listing_url", listingURL))
	cacheKey := generateCacheKey(listingURL)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		cached.Source = domain.SourceCache
		log.Debug("analysis served from cache", zap.String("analysis_id", cached.ID))
		return s.classifyAnalysis(cached), nil
	}

	var analysis *domain.PropertyAnalysis
	if IsDemoURL(listingURL) {
		analysis = DemoAnalysis(listingURL)
	} else {
		if s.provider == nil {
			metrics.AnalysesFailed.WithLabelValues("provider").Inc()
			return nil, fmt.Errorf("%w: no provider configured", domain.ErrProviderFailure)
		}

		result, err := s.provider.AnalyzeListing(ctx, listingURL)
		if err != nil {
			metrics.AnalysesFailed.WithLabelValues("provider").Inc()
			log.Warn("analysis provider failed", zap.Error(err))
			if errors.Is(err, domain.ErrProviderFailure) || errors.Is(err, domain.ErrProviderResponseInvalid) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
		}
		analysis = result
		analysis.ListingURL = listingURL
		analysis.Source = domain.SourceProvider
		analysis.MatchesFound = ExcludeOriginalDomain(listingURL, analysis.MatchesFound)
	}

	analysis.ID = uuid.New().String()
	analysis.CreatedAt = s.now().UTC()

	if s.repository != nil {
		if err := s.repository.Save(ctx, analysis); err != nil {
			// Persistence is best effort; the caller still gets the result
			log.Error("failed to save analysis", zap.String("analysis_id", analysis.ID), zap.Error(err))
		}
	}

	if err := s.cache.Set(ctx, cacheKey, analysis, s.cacheTTL); err != nil {
		log.Warn("failed to cache analysis", zap.Error(err))
	}

	metrics.AnalysesCompleted.WithLabelValues(analysis.Source).Inc()
	log.Info("analysis completed",
		zap.String("analysis_id", analysis.ID),
		zap.String("source", analysis.Source),
		zap.Int("matches", len(analysis.MatchesFound)),
		zap.String("risk_level", string(analysis.RiskLevel)),
	)

	return s.classifyAnalysis(analysis), nil
}

// GetAnalysis loads a stored analysis and classifies its matches
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*domain.ClassifiedAnalysis, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.repository == nil {
		return nil, domain.ErrAnalysisNotFound
	}

	analysis, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.classifyAnalysis(analysis), nil
}

// ListRecent returns the most recent stored analyses
func (s *AnalysisService) ListRecent(ctx context.Context, limit int) ([]*domain.PropertyAnalysis, error) {
	if s.repository == nil {
		return []*domain.PropertyAnalysis{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repository.ListRecent(ctx, limit)
}

func (s *AnalysisService) classifyAnalysis(analysis *domain.PropertyAnalysis) *domain.ClassifiedAnalysis {
	matches := s.Classify(analysis.MatchesFound)

	counts := make(map[domain.ListingStatus]int)
	hasClassifiedSite := false
	for _, m := range matches {
		counts[m.Verdict.Status]++
		if m.Candidate.PlatformType == domain.PlatformClassified {
			hasClassifiedSite = true
		}
	}

	return &domain.ClassifiedAnalysis{
		Analysis:          analysis,
		Matches:           matches,
		StatusCounts:      counts,
		HasClassifiedSite: hasClassifiedSite,
	}
}

func recordVerdicts(matches []domain.ClassifiedMatch) {
	for _, m := range matches {
		metrics.ListingVerdicts.WithLabelValues(string(m.Verdict.Status)).Inc()
	}
}

// isAnalyzableURL mirrors the submission rules: non-blank, http(s), and long
// enough to plausibly point at a listing.
func isAnalyzableURL(listingURL string) bool {
	return listingURL != "" &&
		httpSchemeRegex.MatchString(listingURL) &&
		len(listingURL) > minListingURLLength
}

// generateCacheKey creates a normalized cache key for a listing URL.
// Format: "analysis:{lowercased url without trailing slash}"
func generateCacheKey(listingURL string) string {
	normalized := strings.ToLower(strings.TrimSpace(listingURL))
	normalized = strings.TrimRight(normalized, "/")
	return "analysis:" + normalized
}

// getFromCache retrieves an analysis from cache. Values may come back as the
// original struct, as a decoded JSON map (memory cache) or as raw JSON (redis).
func (s *AnalysisService) getFromCache(ctx context.Context, key string) (*domain.PropertyAnalysis, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch v := value.(type) {
	case *domain.PropertyAnalysis:
		copied := *v
		return &copied, nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		raw, err = json.Marshal(v)
		if err != nil {
			return nil, domain.ErrCacheMiss
		}
	}

	var analysis domain.PropertyAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &analysis, nil
}
