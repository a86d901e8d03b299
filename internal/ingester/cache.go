package ingester

import (
	"time"

	"github.com/goran-ethernal/CoinFeed/pkg/coin"
)

// cacheEntry is the single result of a completed ingestion pass.
// coins is never mutated after the entry is installed.
type cacheEntry struct {
	coins     []coin.CoinRecord
	createdAt time.Time
}

// expired reports whether the entry is at least ttl old at now.
func (e *cacheEntry) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.createdAt) >= ttl
}

// snapshot returns a deep copy of the cached coins.
func (e *cacheEntry) snapshot() []coin.CoinRecord {
	out := make([]coin.CoinRecord, len(e.coins))
	for i, c := range e.coins {
		out[i] = c.Clone()
	}
	return out
}
