package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// AnalysisProvider searches other platforms for listings matching a property
// and returns the candidates it found. The original URL's own domain may still
// appear in the result; callers filter it.
type AnalysisProvider interface {
	AnalyzeListing(ctx context.Context, listingURL string) (*PropertyAnalysis, error)
}

// AnalysisRepository defines the interface for analysis persistence
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *PropertyAnalysis) error
	GetByID(ctx context.Context, id string) (*PropertyAnalysis, error)
	ListRecent(ctx context.Context, limit int) ([]*PropertyAnalysis, error)
}
