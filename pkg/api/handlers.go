package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goran-ethernal/CoinFeed/internal/archive"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	"github.com/goran-ethernal/CoinFeed/pkg/coin"
)

const (
	defaultLimit = 100
	maxLimit     = 1000

	chainUnavailableMessage = "chain unavailable"
)

// CoinService is the ingester surface served over HTTP.
type CoinService interface {
	FetchWithRetry(ctx context.Context, force bool) ([]coin.CoinRecord, error)
	ClearCache()
	CachedAt() (time.Time, bool)
}

// ArchiveReader reads coins from the persistent archive.
// Get returns archive.ErrNotFound for an address that was never archived.
type ArchiveReader interface {
	Get(ctx context.Context, address common.Address) (coin.CoinRecord, error)
	List(ctx context.Context, limit, offset int) ([]coin.CoinRecord, error)
	Count(ctx context.Context) (int, error)
}

// Handler handles HTTP requests for the API.
type Handler struct {
	coins   CoinService
	archive ArchiveReader
	log     *logger.Logger
}

// NewHandler creates a new API handler. archive may be nil.
func NewHandler(coins CoinService, archive ArchiveReader, log *logger.Logger) *Handler {
	return &Handler{
		coins:   coins,
		archive: archive,
		log:     log,
	}
}

// ListCoins returns the current coin set, running an ingestion pass when the cache is stale.
// @Summary List coins
// @Description Get the deduplicated coins created through the platform referrer. Served from cache while fresh.
// @Tags Coins
// @Produce json
// @Success 200 {object} CoinsResponse "Current coin set"
// @Failure 503 {object} ErrorResponse "Chain unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/coins [get]
func (h *Handler) ListCoins(w http.ResponseWriter, r *http.Request) {
	h.serveCoins(w, r, false)
}

// RefreshCoins drops the cache and runs a new ingestion pass.
// @Summary Refresh coins
// @Description Clear the cache and run a new ingestion pass
// @Tags Coins
// @Produce json
// @Success 200 {object} CoinsResponse "Fresh coin set"
// @Failure 503 {object} ErrorResponse "Chain unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/coins/refresh [post]
func (h *Handler) RefreshCoins(w http.ResponseWriter, r *http.Request) {
	h.serveCoins(w, r, true)
}

// ClearCache drops the cache entry.
// @Summary Clear cache
// @Description Remove the cached coin set. The next read runs a new pass.
// @Tags Coins
// @Success 204 "Cache cleared"
// @Router /api/v1/coins/cache [delete]
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.coins.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// GetCoin looks up a single coin in the current set.
// @Summary Get a coin
// @Description Look up a coin by contract address in the current coin set
// @Tags Coins
// @Produce json
// @Param address path string true "Coin contract address"
// @Success 200 {object} coin.CoinRecord "Coin"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 404 {object} ErrorResponse "Coin not found"
// @Failure 503 {object} ErrorResponse "Chain unavailable"
// @Router /api/v1/coins/{address} [get]
func (h *Handler) GetCoin(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("address")
	if !common.IsHexAddress(raw) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid address '%s'", raw))
		return
	}
	address := common.HexToAddress(raw)

	coins, err := h.coins.FetchWithRetry(r.Context(), false)
	if err != nil {
		h.respondFetchError(w, err)
		return
	}

	for _, c := range coins {
		if c.Address == address {
			respondJSON(w, http.StatusOK, c)
			return
		}
	}

	respondError(w, http.StatusNotFound, fmt.Sprintf("coin '%s' not found", address.Hex()))
}

// ListArchive returns a page of archived coins.
// @Summary List archived coins
// @Description Page through every coin ever ingested, ordered by creation block
// @Tags Archive
// @Produce json
// @Param limit query int false "Maximum number of coins to return" default(100)
// @Param offset query int false "Number of coins to skip" default(0)
// @Success 200 {object} ArchiveResponse "Archived coins with pagination info"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Archive disabled"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/archive/coins [get]
func (h *Handler) ListArchive(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		respondError(w, http.StatusNotFound, "archive is not enabled")
		return
	}

	limit, offset, err := parsePagination(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid query parameters: %v", err))
		return
	}

	total, err := h.archive.Count(r.Context())
	if err != nil {
		h.log.Errorf("Failed to count archived coins: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query archive")
		return
	}

	coins, err := h.archive.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Errorf("Failed to list archived coins: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query archive")
		return
	}
	if coins == nil {
		coins = []coin.CoinRecord{}
	}

	respondJSON(w, http.StatusOK, ArchiveResponse{
		Coins: coins,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(coins) < total,
		},
	})
}

// GetArchivedCoin looks up a single coin in the archive.
// @Summary Get an archived coin
// @Description Look up a coin by contract address among every coin ever ingested
// @Tags Archive
// @Produce json
// @Param address path string true "Coin contract address"
// @Success 200 {object} coin.CoinRecord "Archived coin"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 404 {object} ErrorResponse "Coin not archived or archive disabled"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/archive/coins/{address} [get]
func (h *Handler) GetArchivedCoin(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		respondError(w, http.StatusNotFound, "archive is not enabled")
		return
	}

	raw := r.PathValue("address")
	if !common.IsHexAddress(raw) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid address '%s'", raw))
		return
	}
	address := common.HexToAddress(raw)

	c, err := h.archive.Get(r.Context(), address)
	switch {
	case errors.Is(err, archive.ErrNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("coin '%s' not archived", address.Hex()))
	case err != nil:
		h.log.Errorf("Failed to load archived coin %s: %v", address.Hex(), err)
		respondError(w, http.StatusInternalServerError, "failed to query archive")
	default:
		respondJSON(w, http.StatusOK, c)
	}
}

// Health returns the API health status.
// @Summary Health check
// @Description Check API health and cache state
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Archive:   h.archive != nil,
	}

	if at, ok := h.coins.CachedAt(); ok {
		response.Cache = CacheState{Live: true, CachedAt: &at}
	}

	respondJSON(w, http.StatusOK, response)
}

func (h *Handler) serveCoins(w http.ResponseWriter, r *http.Request, force bool) {
	coins, err := h.coins.FetchWithRetry(r.Context(), force)
	if err != nil {
		h.respondFetchError(w, err)
		return
	}
	if coins == nil {
		coins = []coin.CoinRecord{}
	}

	response := CoinsResponse{
		Coins: coins,
		Count: len(coins),
	}
	if at, ok := h.coins.CachedAt(); ok {
		response.CachedAt = &at
	}

	respondJSON(w, http.StatusOK, response)
}

func (h *Handler) respondFetchError(w http.ResponseWriter, err error) {
	h.log.Errorf("Failed to fetch coins: %v", err)

	if errors.Is(err, coin.ErrChainUnavailable) {
		respondError(w, http.StatusServiceUnavailable, chainUnavailableMessage)
		return
	}
	respondError(w, http.StatusInternalServerError, "failed to fetch coins")
}

// parsePagination parses the limit and offset query parameters.
func parsePagination(r *http.Request) (int, int, error) {
	limit, offset := defaultLimit, 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > maxLimit {
			return 0, 0, fmt.Errorf("invalid limit: must be between 1 and %d", maxLimit)
		}
		limit = l
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		o, err := strconv.Atoi(offsetStr)
		if err != nil || o < 0 {
			return 0, 0, fmt.Errorf("invalid offset: must be non-negative")
		}
		offset = o
	}

	return limit, offset, nil
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode JSON first to catch any errors before writing status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	if _, err := w.Write(encoded); err != nil {
		// Headers already sent
		return
	}
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	respondJSON(w, status, response)
}
