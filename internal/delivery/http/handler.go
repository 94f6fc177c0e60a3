package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/listingcheck/backend/internal/domain"
)

const version = "1.0.0"

// ListingService is the use case layer the handlers depend on
type ListingService interface {
	Classify(candidates []domain.MatchCandidate) []domain.ClassifiedMatch
	AnalyzeListing(ctx context.Context, listingURL string) (*domain.ClassifiedAnalysis, error)
	GetAnalysis(ctx context.Context, id string) (*domain.ClassifiedAnalysis, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.PropertyAnalysis, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service ListingService
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil service makes every API
// endpoint answer 503.
func NewHandler(service ListingService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "listingcheck-backend",
		"version": version,
	})
}

// ClassifyListings classifies a batch of match candidates
func (h *Handler) ClassifyListings(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req domain.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	matches := h.service.Classify(req.Candidates)
	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

// AnalyzeListing verifies a listing URL across platforms
func (h *Handler) AnalyzeListing(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidListingURL.Error()})
		return
	}

	result, err := h.service.AnalyzeListing(c.Request.Context(), req.ListingURL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAnalysis returns a stored analysis by ID
func (h *Handler) GetAnalysis(c *gin.Context) {
	if !h.available(c) {
		return
	}

	result, err := h.service.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListAnalyses returns the most recent analyses
func (h *Handler) ListAnalyses(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	analyses, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyses": analyses,
		"count":    len(analyses),
	})
}

func (h *Handler) available(c *gin.Context) bool {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis service not configured"})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidListingURL), errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrProviderFailure), errors.Is(err, domain.ErrProviderResponseInvalid):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
