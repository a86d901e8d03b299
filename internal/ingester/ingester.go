package ingester

import (
	"context"
	"fmt"
	"sync"
	"time"

	icommon "github.com/goran-ethernal/CoinFeed/internal/common"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	"github.com/goran-ethernal/CoinFeed/internal/metrics"
	"github.com/goran-ethernal/CoinFeed/internal/retry"
	"github.com/goran-ethernal/CoinFeed/internal/scanner"
	"github.com/goran-ethernal/CoinFeed/pkg/coin"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCacheTTL = 5 * time.Minute
	defaultWorkers  = 4
)

// Scanner finds CoinCreated events on chain.
type Scanner interface {
	Head(ctx context.Context) (uint64, error)
	Scan(ctx context.Context, from, to uint64) (*scanner.Result, error)
}

// Resolver fetches metadata documents and maps media URIs to gateway URLs.
type Resolver interface {
	Resolve(ctx context.Context, uri string) (*coin.MetadataDocument, error)
	GatewayURL(uri string) string
}

// Archive persists the coins produced by a pass.
type Archive interface {
	Upsert(ctx context.Context, coins []coin.CoinRecord) error
}

// Config holds the ingester configuration.
type Config struct {
	// StartBlock is the first block scanned on every pass.
	StartBlock uint64
	// CacheTTL is how long a pass result is served without network access.
	CacheTTL time.Duration
	// Workers bounds concurrent metadata resolutions.
	Workers int
	// PlaceholderImage is the cover art used when a document has no image.
	PlaceholderImage string
	// PassRetry is the policy used by FetchWithRetry.
	PassRetry retry.Policy
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithClock overrides the time source used for cache freshness.
func WithClock(now func() time.Time) Option {
	return func(i *Ingester) {
		i.now = now
	}
}

// WithProgress registers a callback receiving human readable status messages during a pass.
func WithProgress(progress func(string)) Option {
	return func(i *Ingester) {
		i.progress = progress
	}
}

// WithArchive stores the result of every successful pass.
func WithArchive(archive Archive) Option {
	return func(i *Ingester) {
		i.archive = archive
	}
}

// Ingester discovers coins on chain, enriches them with metadata and caches the result.
type Ingester struct {
	scanner  Scanner
	resolver Resolver
	archive  Archive
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
	progress func(string)

	mu    sync.RWMutex
	entry *cacheEntry

	// passMu serializes passes so concurrent misses trigger a single scan.
	passMu sync.Mutex
}

// New creates a new Ingester.
func New(s Scanner, r Resolver, cfg Config, log *logger.Logger, opts ...Option) *Ingester {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.PlaceholderImage == "" {
		cfg.PlaceholderImage = coin.DefaultCoverArt
	}

	i := &Ingester{
		scanner:  s,
		resolver: r,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// FetchCoins returns the cached coins while the cache entry is fresh and runs
// a full ingestion pass otherwise. Only a head block failure fails the call.
func (i *Ingester) FetchCoins(ctx context.Context) ([]coin.CoinRecord, error) {
	coins, err := i.Cached()
	if err == nil {
		metrics.CacheLookupInc("hit")
		return coins, nil
	}

	i.passMu.Lock()
	defer i.passMu.Unlock()

	// a pass may have completed while waiting for the lock
	if coins, err = i.Cached(); err == nil {
		metrics.CacheLookupInc("hit")
		return coins, nil
	}
	metrics.CacheLookupInc("miss")

	return i.pass(ctx)
}

// Refresh drops the cache entry and runs a new pass.
func (i *Ingester) Refresh(ctx context.Context) ([]coin.CoinRecord, error) {
	i.ClearCache()
	return i.FetchCoins(ctx)
}

// ClearCache removes the cache entry.
func (i *Ingester) ClearCache() {
	i.mu.Lock()
	i.entry = nil
	i.mu.Unlock()

	metrics.CoinsCached.Set(0)
}

// Cached returns the coins of a fresh cache entry or coin.ErrCacheMiss.
func (i *Ingester) Cached() ([]coin.CoinRecord, error) {
	coins, ok := i.live()
	if !ok {
		return nil, coin.ErrCacheMiss
	}
	return coins, nil
}

// CachedAt returns the capture time of a fresh cache entry.
func (i *Ingester) CachedAt() (time.Time, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.entry == nil || i.entry.expired(i.now(), i.cfg.CacheTTL) {
		return time.Time{}, false
	}
	return i.entry.createdAt, true
}

// FetchWithRetry runs FetchCoins under the pass retry policy, starting with a
// fresh attempt counter on every call. When force is set the cache is dropped first.
func (i *Ingester) FetchWithRetry(ctx context.Context, force bool) ([]coin.CoinRecord, error) {
	if force {
		i.ClearCache()
	}

	var coins []coin.CoinRecord
	err := retry.Do(ctx, i.cfg.PassRetry, "ingestion_pass", retry.Always, func(attempt int) error {
		var err error
		coins, err = i.FetchCoins(ctx)
		if err != nil {
			i.log.Warnw("ingestion pass failed",
				"attempt", attempt,
				"max_attempts", i.cfg.PassRetry.MaxAttempts,
				"error", err,
			)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return coins, nil
}

func (i *Ingester) live() ([]coin.CoinRecord, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.entry == nil || i.entry.expired(i.now(), i.cfg.CacheTTL) {
		return nil, false
	}
	return i.entry.snapshot(), true
}

// pass runs a full ingestion pass and installs its result. Callers hold passMu.
func (i *Ingester) pass(ctx context.Context) ([]coin.CoinRecord, error) {
	start := time.Now()

	i.report("Fetching current block...")

	head, err := i.scanner.Head(ctx)
	if err != nil {
		metrics.PassLog("chain_unavailable", time.Since(start))
		metrics.ComponentHealthSet(icommon.ComponentIngester, false)
		return nil, fmt.Errorf("failed to fetch head block: %w", err)
	}

	var records []coin.LogRecord
	if i.cfg.StartBlock <= head {
		i.report(fmt.Sprintf("Scanning blocks %d to %d...", i.cfg.StartBlock, head))

		result, err := i.scanner.Scan(ctx, i.cfg.StartBlock, head)
		if err != nil {
			metrics.PassLog("cancelled", time.Since(start))
			return nil, fmt.Errorf("scan aborted: %w", err)
		}

		if len(result.Failed) > 0 {
			i.log.Warnw("some windows failed, returning partial results",
				"failed_windows", len(result.Failed),
				"windows", result.Windows,
			)
		}
		records = result.Records
	} else {
		i.log.Infow("start block is ahead of head, nothing to scan",
			"start_block", i.cfg.StartBlock,
			"head", head,
		)
	}

	i.report(fmt.Sprintf("Loading metadata for %d coins...", len(records)))

	coins, err := i.buildCoins(ctx, records)
	if err != nil {
		metrics.PassLog("cancelled", time.Since(start))
		return nil, err
	}

	coins = coin.Dedup(coins)

	entry := &cacheEntry{coins: coins, createdAt: i.now()}
	i.mu.Lock()
	i.entry = entry
	i.mu.Unlock()

	metrics.CoinsCached.Set(float64(len(coins)))
	metrics.LastScannedBlock.Set(float64(head))
	metrics.PassLog("success", time.Since(start))
	metrics.ComponentHealthSet(icommon.ComponentIngester, true)

	i.report(fmt.Sprintf("Found %d coins", len(coins)))
	i.log.Infow("ingestion pass completed",
		"coins", len(coins),
		"logs", len(records),
		"head", head,
		"duration", time.Since(start),
	)

	if i.archive != nil {
		err := i.archive.Upsert(ctx, entry.snapshot())
		if err != nil {
			i.log.Errorw("failed to archive coins", "error", err)
		}
		metrics.ComponentHealthSet(icommon.ComponentArchive, err == nil)
	}

	return entry.snapshot(), nil
}

// buildCoins resolves metadata for every record with a bounded worker pool.
// Results are written by index so the output keeps the record order.
func (i *Ingester) buildCoins(ctx context.Context, records []coin.LogRecord) ([]coin.CoinRecord, error) {
	coins := make([]coin.CoinRecord, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.cfg.Workers)

	for idx, rec := range records {
		g.Go(func() error {
			doc, err := i.resolver.Resolve(gctx, rec.URI)
			if err != nil {
				metrics.MetadataDefaultsInc()
				i.log.Warnw("using default metadata",
					"coin", rec.Coin.Hex(),
					"uri", rec.URI,
					"error", err,
				)
				doc = nil
			}

			coins[idx] = coin.Build(rec, doc, i.cfg.PlaceholderImage, i.resolver.GatewayURL)
			return nil
		})
	}

	// workers absorb resolver errors; cancellation is reported from ctx below
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("metadata resolution aborted: %w", err)
	}

	return coins, nil
}

func (i *Ingester) report(msg string) {
	if i.progress != nil {
		i.progress(msg)
	}
}
