package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goran-ethernal/CoinFeed/internal/logger"
	"github.com/goran-ethernal/CoinFeed/internal/retry"
	"github.com/goran-ethernal/CoinFeed/pkg/coin"
	"github.com/goran-ethernal/CoinFeed/pkg/config"
	lru "github.com/hashicorp/golang-lru"
)

// maxDocumentSize caps the bytes read from a gateway response.
const maxDocumentSize = 1 << 20

// Config holds the resolver configuration.
type Config struct {
	// Gateways are the IPFS gateway base URLs tried in order.
	Gateways []string
	// ArweaveGateway is the base URL for ar:// URIs.
	ArweaveGateway string
	// RequestTimeout bounds each gateway request.
	RequestTimeout time.Duration
	// Retry is applied to the whole gateway list.
	Retry retry.Policy
	// CacheSize is the number of documents kept in memory. Zero or negative disables the cache.
	CacheSize int
}

// ConfigFromMetadata converts the file configuration to a resolver Config.
func ConfigFromMetadata(cfg config.MetadataConfig) Config {
	return Config{
		Gateways:       cfg.Gateways,
		ArweaveGateway: cfg.ArweaveGateway,
		RequestTimeout: cfg.RequestTimeout.Duration,
		Retry:          retry.FromConfig(&cfg.Retry, 0),
		CacheSize:      cfg.CacheSize,
	}
}

// Resolver fetches metadata documents from content-addressed storage.
type Resolver struct {
	cfg    Config
	client *http.Client
	cache  *lru.Cache
	log    *logger.Logger
}

// NewResolver creates a new Resolver. A nil client uses http.DefaultClient.
func NewResolver(cfg Config, client *http.Client, log *logger.Logger) (*Resolver, error) {
	if len(cfg.Gateways) == 0 {
		cfg.Gateways = append([]string(nil), config.DefaultGateways...)
	}
	if client == nil {
		client = http.DefaultClient
	}

	r := &Resolver{
		cfg:    cfg,
		client: client,
		log:    log,
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create metadata cache: %w", err)
		}
		r.cache = cache
	}

	return r, nil
}

// Resolve fetches and parses the document behind uri.
//
// Invalid URIs fail with coin.ErrInvalidURI before any request is made. Every
// attempt walks the gateway list in order and the first 2xx JSON object wins.
// When all attempts are exhausted the error wraps coin.ErrMetadataUnresolvable
// and the last gateway error.
func (r *Resolver) Resolve(ctx context.Context, uri string) (*coin.MetadataDocument, error) {
	loc, err := parseURI(uri)
	if err != nil {
		resolutionInc("invalid")
		return nil, err
	}

	cacheable := r.cache != nil && loc.kind != kindHTTP

	if cacheable {
		if cached, ok := r.cache.Get(loc.ref); ok {
			resolutionInc("cached")
			return cached.(*coin.MetadataDocument), nil //nolint:forcetypeassert
		}
	}

	urls := loc.urls(r.cfg.Gateways, r.cfg.ArweaveGateway)

	var doc *coin.MetadataDocument
	err = retry.Do(ctx, r.cfg.Retry, "metadata_fetch", retry.Always, func(attempt int) error {
		var lastErr error
		for _, u := range urls {
			d, err := r.fetch(ctx, u)
			if err == nil {
				doc = d
				return nil
			}
			lastErr = err
			r.log.Debugw("gateway request failed",
				"url", u,
				"attempt", attempt,
				"error", err,
			)
		}
		return lastErr
	})
	if err != nil {
		resolutionInc("unresolvable")
		return nil, fmt.Errorf("%w: %s: %w", coin.ErrMetadataUnresolvable, uri, err)
	}

	// only content-addressed documents are immutable
	if cacheable {
		r.cache.Add(loc.ref, doc)
	}
	resolutionInc("resolved")

	return doc, nil
}

// GatewayURL maps a media URI (image, audio) to a browser-fetchable URL on the
// first configured gateway. URIs that cannot be parsed are returned trimmed but unchanged.
func (r *Resolver) GatewayURL(uri string) string {
	loc, err := parseURI(uri)
	if err != nil {
		return strings.TrimSpace(uri)
	}

	return loc.urls(r.cfg.Gateways, r.cfg.ArweaveGateway)[0]
}

// fetch performs a single gateway request.
func (r *Resolver) fetch(ctx context.Context, url string) (*coin.MetadataDocument, error) {
	if r.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	doc, err := r.doFetch(ctx, url)
	if err != nil {
		gatewayRequestLog("error", time.Since(start))
		return nil, err
	}
	gatewayRequestLog("ok", time.Since(start))

	return doc, nil
}

func (r *Resolver) doFetch(ctx context.Context, url string) (*coin.MetadataDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDocumentSize))
		return nil, fmt.Errorf("gateway %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, fmt.Errorf("gateway %s did not return a JSON object", url)
	}

	var doc coin.MetadataDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document from %s: %w", url, err)
	}

	return &doc, nil
}
