package api

import (
	"time"

	"github.com/goran-ethernal/CoinFeed/pkg/coin"
)

// CoinsResponse is the current coin set.
type CoinsResponse struct {
	Coins    []coin.CoinRecord `json:"coins"`
	Count    int               `json:"count"`
	CachedAt *time.Time        `json:"cached_at,omitempty"`
}

// ArchiveResponse is a page of archived coins.
type ArchiveResponse struct {
	Coins      []coin.CoinRecord `json:"coins"`
	Pagination PaginationResult  `json:"pagination"`
}

// PaginationResult contains pagination metadata.
type PaginationResult struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Cache     CacheState `json:"cache"`
	Archive   bool       `json:"archive"`
}

// CacheState describes the ingester cache slot.
type CacheState struct {
	Live     bool       `json:"live"`
	CachedAt *time.Time `json:"cached_at,omitempty"`
}
