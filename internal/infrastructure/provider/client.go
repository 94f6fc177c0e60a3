package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/listingcheck/backend/internal/domain"
	"github.com/listingcheck/backend/internal/infrastructure/metrics"
)

// Config holds provider client settings
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
}

// Client asks an LLM-backed search service to find cross-platform matches
// for a listing and returns them as a PropertyAnalysis.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	maxRetries  int
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      *zap.Logger
	debug       bool
}

// NewClient creates a new provider client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries:  cfg.MaxRetries,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 5),
		backoff:     exponentialBackoff,
		logger:      logger.Named("provider"),
	}
}

// SetDebug toggles logging of raw provider responses
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

type invokeRequest struct {
	Prompt                 string                 `json:"prompt"`
	AddContextFromInternet bool                   `json:"add_context_from_internet"`
	ResponseJSONSchema     map[string]interface{} `json:"response_json_schema"`
}

// AnalyzeListing asks the provider to analyze listingURL
func (c *Client) AnalyzeListing(ctx context.Context, listingURL string) (*domain.PropertyAnalysis, error) {
	body, err := json.Marshal(invokeRequest{
		Prompt:                 buildPrompt(listingURL),
		AddContextFromInternet: true,
		ResponseJSONSchema:     analysisResponseSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/invoke", c.baseURL)
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(c.backoff(attempt - 1)):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, ctx.Err())
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrProviderFailure, err)
		}

		payload, retry, err := c.doRequest(ctx, endpoint, body)
		if err != nil {
			c.logger.Warn("provider request failed",
				zap.Int("attempt", attempt),
				zap.Bool("retry", retry),
				zap.Error(err),
			)
			lastErr = err
			if !retry {
				break
			}
			continue
		}

		analysis, err := decodeAnalysis(payload)
		if err != nil {
			metrics.ProviderRequestDuration.WithLabelValues("invalid").Observe(time.Since(start).Seconds())
			return nil, err
		}

		metrics.ProviderRequestDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
		c.logger.Info("provider analysis received",
			zap.String("listing_url", listingURL),
			zap.Int("matches", len(analysis.MatchesFound)),
			zap.Int("attempt", attempt),
		)
		return analysis, nil
	}

	metrics.ProviderRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
	return nil, lastErr
}

// doRequest executes one POST. The bool reports whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, endpoint string, body []byte) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to create request: %v", domain.ErrProviderFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ListingCheck/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: read body: %v", domain.ErrProviderFailure, err)
	}

	if c.debug {
		c.logger.Debug("provider response",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload),
		)
	}

	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
		return nil, retry, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	return payload, false, nil
}

// decodeAnalysis validates the payload against the response schema and maps it
func decodeAnalysis(payload []byte) (*domain.PropertyAnalysis, error) {
	var document interface{}
	if err := json.Unmarshal(payload, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderResponseInvalid, err)
	}
	if err := validateResponse(document); err != nil {
		return nil, err
	}

	var resp analysisResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderResponseInvalid, err)
	}
	return MapToPropertyAnalysis(&resp), nil
}
