package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("caller not authorized")

	// ErrSearchUnavailable is returned when the external search index fails
	ErrSearchUnavailable = errors.New("search index unavailable")

	// ErrNoCandidates is returned when search produced no usable candidates
	ErrNoCandidates = errors.New("no candidate listings found")

	// ErrFetchFailed is returned when a candidate page could not be fetched
	ErrFetchFailed = errors.New("candidate page fetch failed")

	// ErrNoPrice is returned when no price could be extracted from a page
	ErrNoPrice = errors.New("no price found on page")

	// ErrCacheMiss is returned when no unexpired deals exist for a product
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when the deal cache store is unavailable
	ErrCacheUnavailable = errors.New("deal cache unavailable")
)
