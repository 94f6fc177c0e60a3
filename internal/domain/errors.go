package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidListingURL is returned when the submitted listing URL is not an http(s) URL
	ErrInvalidListingURL = errors.New("please enter a valid property listing URL (e.g., https://...)")

	// ErrAnalysisNotFound is returned when a stored analysis cannot be found
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrProviderFailure is returned when the listing analysis provider request fails
	ErrProviderFailure = errors.New("analysis provider request failed")

	// ErrProviderResponseInvalid is returned when the provider response does not match the expected schema
	ErrProviderResponseInvalid = errors.New("analysis provider returned an invalid response")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
