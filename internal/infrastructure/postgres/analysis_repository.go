package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/listingcheck/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS property_analyses (
	id                UUID         PRIMARY KEY,
	listing_url       TEXT         NOT NULL,
	extracted_details JSONB        NOT NULL DEFAULT '{}',
	matches_found     JSONB        NOT NULL DEFAULT '[]',
	risk_level        VARCHAR(32)  NOT NULL,
	summary           TEXT         NOT NULL DEFAULT '',
	fraud_indicators  JSONB        NOT NULL DEFAULT '[]',
	source            VARCHAR(16)  NOT NULL,
	created_at        TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_property_analyses_created_at ON property_analyses(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_property_analyses_listing_url ON property_analyses(listing_url);
`

const selectColumns = `id, listing_url, extracted_details, matches_found, risk_level, summary, fraud_indicators, source, created_at`

// AnalysisRepository persists property analyses to PostgreSQL
type AnalysisRepository struct {
	db *sql.DB
}

// Open connects to PostgreSQL and configures the pool
func Open(dsn string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns / 2)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// NewAnalysisRepository wraps an open database handle
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Migrate creates the analyses table if it does not exist
func (r *AnalysisRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// Ping tests the database connection
func (r *AnalysisRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Save inserts an analysis. Saving the same ID twice overwrites the row.
func (r *AnalysisRepository) Save(ctx context.Context, analysis *domain.PropertyAnalysis) error {
	details, err := json.Marshal(analysis.ExtractedDetails)
	if err != nil {
		return fmt.Errorf("postgres: encode extracted details: %w", err)
	}
	matches, err := json.Marshal(nonNilMatches(analysis.MatchesFound))
	if err != nil {
		return fmt.Errorf("postgres: encode matches: %w", err)
	}
	indicators, err := json.Marshal(nonNilStrings(analysis.FraudIndicators))
	if err != nil {
		return fmt.Errorf("postgres: encode fraud indicators: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO property_analyses (`+selectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			extracted_details = EXCLUDED.extracted_details,
			matches_found     = EXCLUDED.matches_found,
			risk_level        = EXCLUDED.risk_level,
			summary           = EXCLUDED.summary,
			fraud_indicators  = EXCLUDED.fraud_indicators,
			source            = EXCLUDED.source`,
		analysis.ID,
		analysis.ListingURL,
		details,
		matches,
		string(analysis.RiskLevel),
		analysis.Summary,
		indicators,
		analysis.Source,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert analysis: %w", err)
	}
	return nil
}

// GetByID loads one analysis
func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (*domain.PropertyAnalysis, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM property_analyses WHERE id = $1`, id)

	analysis, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// ListRecent returns up to limit analyses, newest first
func (r *AnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*domain.PropertyAnalysis, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM property_analyses ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []*domain.PropertyAnalysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list analyses: %w", err)
	}
	return analyses, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(s scanner) (*domain.PropertyAnalysis, error) {
	var (
		a                            domain.PropertyAnalysis
		details, matches, indicators []byte
		riskLevel                    string
	)

	err := s.Scan(
		&a.ID,
		&a.ListingURL,
		&details,
		&matches,
		&riskLevel,
		&a.Summary,
		&indicators,
		&a.Source,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("postgres: scan analysis: %w", err)
	}

	a.RiskLevel = domain.RiskLevel(riskLevel)
	if err := json.Unmarshal(details, &a.ExtractedDetails); err != nil {
		return nil, fmt.Errorf("postgres: decode extracted details: %w", err)
	}
	if err := json.Unmarshal(matches, &a.MatchesFound); err != nil {
		return nil, fmt.Errorf("postgres: decode matches: %w", err)
	}
	if err := json.Unmarshal(indicators, &a.FraudIndicators); err != nil {
		return nil, fmt.Errorf("postgres: decode fraud indicators: %w", err)
	}

	return &a, nil
}

func nonNilMatches(m []domain.MatchCandidate) []domain.MatchCandidate {
	if m == nil {
		return []domain.MatchCandidate{}
	}
	return m
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
