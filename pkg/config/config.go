package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"
	icommon "github.com/goran-ethernal/CoinFeed/internal/common"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	itypes "github.com/goran-ethernal/CoinFeed/internal/types"
)

const (
	// DefaultFactoryAddress is the Zora coin factory proxy on Base.
	DefaultFactoryAddress = "0x777777751622c0d3258f214F9DF38E35BF45baF3"

	// DefaultPlaceholderImage is used as cover art when a coin has no image.
	DefaultPlaceholderImage = "/placeholder.svg"
)

// DefaultGateways are the IPFS gateways tried in order when resolving metadata.
var DefaultGateways = []string{
	"https://ipfs.io",
	"https://cloudflare-ipfs.com",
	"https://gateway.pinata.cloud",
}

// Config represents the complete configuration for CoinFeed.
type Config struct {
	// Ingester contains the chain scanning and caching configuration
	Ingester IngesterConfig `yaml:"ingester" json:"ingester" toml:"ingester"`

	// Metadata contains the metadata resolver configuration
	Metadata MetadataConfig `yaml:"metadata" json:"metadata" toml:"metadata"`

	// Archive contains the optional SQLite archive configuration
	Archive *ArchiveConfig `yaml:"archive,omitempty" json:"archive,omitempty" toml:"archive,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`

	// API contains REST API server configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`
}

// IngesterConfig represents the configuration for the chain event ingester.
type IngesterConfig struct {
	// RPCURL is the JSON-RPC endpoint (or RPC proxy) URL
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// FactoryAddress is the coin factory contract emitting CoinCreated events
	FactoryAddress string `yaml:"factory_address" json:"factory_address" toml:"factory_address"`

	// PlatformReferrer is the referrer address whose coins are ingested
	PlatformReferrer string `yaml:"platform_referrer" json:"platform_referrer" toml:"platform_referrer"`

	// StartBlock is the first block scanned on every pass
	StartBlock uint64 `yaml:"start_block" json:"start_block" toml:"start_block"`

	// WindowSize is the block offset of a single eth_getLogs call: a window covers [from, from+window_size]
	WindowSize uint64 `yaml:"window_size" json:"window_size" toml:"window_size"`

	// WindowTimeout bounds a single window query
	WindowTimeout icommon.Duration `yaml:"window_timeout" json:"window_timeout" toml:"window_timeout"`

	// Finality specifies which head is scanned up to: "latest", "safe" or "finalized"
	Finality itypes.BlockFinality `yaml:"finality" json:"finality" toml:"finality"`

	// CacheTTL is how long a completed pass is served without touching the network
	CacheTTL icommon.Duration `yaml:"cache_ttl" json:"cache_ttl" toml:"cache_ttl"`

	// Retry configures retries of individual RPC calls
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`

	// PassRetry configures how often a fully failed pass is retried by callers
	PassRetry RetryConfig `yaml:"pass_retry" json:"pass_retry" toml:"pass_retry"`
}

// ApplyDefaults sets default values for optional ingester configuration fields.
func (i *IngesterConfig) ApplyDefaults() {
	if i.FactoryAddress == "" {
		i.FactoryAddress = DefaultFactoryAddress
	}
	if i.WindowSize == 0 {
		i.WindowSize = 1000
	}
	if i.WindowTimeout.Duration == 0 {
		i.WindowTimeout = icommon.NewDuration(30 * time.Second) //nolint:mnd
	}
	if i.Finality == "" {
		i.Finality = itypes.FinalityLatest
	}
	if i.CacheTTL.Duration == 0 {
		i.CacheTTL = icommon.NewDuration(5 * time.Minute) //nolint:mnd
	}
	if i.Retry != nil {
		i.Retry.ApplyDefaults()
	}
	if i.PassRetry.MaxAttempts == 0 {
		i.PassRetry.MaxAttempts = 3
	}
	i.PassRetry.ApplyDefaults()
}

// Validate checks if the ingester configuration is valid.
func (i *IngesterConfig) Validate() error {
	if i.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	if !common.IsHexAddress(i.FactoryAddress) {
		return fmt.Errorf("factory_address: invalid address '%s'", i.FactoryAddress)
	}
	if i.PlatformReferrer == "" {
		return fmt.Errorf("platform_referrer is required")
	}
	if !common.IsHexAddress(i.PlatformReferrer) {
		return fmt.Errorf("platform_referrer: invalid address '%s'", i.PlatformReferrer)
	}
	if !i.Finality.IsValid() {
		return fmt.Errorf("finality: invalid block finality '%s' (must be one of: latest, safe, finalized)", i.Finality)
	}
	if i.WindowSize == 0 {
		return fmt.Errorf("window_size must be greater than zero")
	}
	return nil
}

// RetryConfig represents retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff icommon.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff icommon.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = icommon.NewDuration(1 * time.Second)
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = icommon.NewDuration(30 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// Validate checks if the retry configuration is valid.
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if r.BackoffMultiplier < 1 {
		return fmt.Errorf("backoff_multiplier must be at least 1")
	}
	if r.MaxBackoff.Duration < r.InitialBackoff.Duration {
		return fmt.Errorf("max_backoff must not be lower than initial_backoff")
	}
	return nil
}

// MetadataConfig configures resolution of off-chain coin metadata documents.
type MetadataConfig struct {
	// Gateways are the IPFS gateway base URLs tried in order
	Gateways []string `yaml:"gateways" json:"gateways" toml:"gateways"`

	// ArweaveGateway is the base URL used for ar:// URIs
	ArweaveGateway string `yaml:"arweave_gateway" json:"arweave_gateway" toml:"arweave_gateway"`

	// RequestTimeout bounds a single gateway request
	RequestTimeout icommon.Duration `yaml:"request_timeout" json:"request_timeout" toml:"request_timeout"`

	// Retry configures attempts over the whole gateway list
	Retry RetryConfig `yaml:"retry" json:"retry" toml:"retry"`

	// Workers is the number of documents resolved concurrently during a pass
	Workers int `yaml:"workers" json:"workers" toml:"workers"`

	// CacheSize is the number of resolved documents kept in memory (negative disables)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// PlaceholderImage is the cover art used when a document has no image
	PlaceholderImage string `yaml:"placeholder_image" json:"placeholder_image" toml:"placeholder_image"`
}

// ApplyDefaults sets default values for optional metadata configuration fields.
func (m *MetadataConfig) ApplyDefaults() {
	if len(m.Gateways) == 0 {
		m.Gateways = append([]string(nil), DefaultGateways...)
	}
	if m.ArweaveGateway == "" {
		m.ArweaveGateway = "https://arweave.net"
	}
	if m.RequestTimeout.Duration == 0 {
		m.RequestTimeout = icommon.NewDuration(10 * time.Second) //nolint:mnd
	}
	m.Retry.ApplyDefaults()
	if m.Workers == 0 {
		m.Workers = 4
	}
	if m.CacheSize == 0 {
		m.CacheSize = 512
	}
	if m.PlaceholderImage == "" {
		m.PlaceholderImage = DefaultPlaceholderImage
	}
}

// Validate checks if the metadata configuration is valid.
func (m *MetadataConfig) Validate() error {
	for i, gw := range append(append([]string(nil), m.Gateways...), m.ArweaveGateway) {
		u, err := url.Parse(gw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("gateway[%d]: invalid gateway URL '%s'", i, gw)
		}
	}
	if m.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if err := m.Retry.Validate(); err != nil {
		return fmt.Errorf("retry: %w", err)
	}
	return nil
}

// ArchiveConfig configures the optional SQLite archive of ingested coins.
type ArchiveConfig struct {
	// Enabled controls whether completed passes are archived
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// DB contains database configuration for the archive
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`
}

// ApplyDefaults sets default values for optional archive configuration fields.
func (a *ArchiveConfig) ApplyDefaults() {
	if a.DB.Path == "" {
		a.DB.Path = "coinfeed.db"
	}
	a.DB.ApplyDefaults()
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 4
	}
}

// Validate checks if the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("path is required")
	}
	switch d.JournalMode {
	case "WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY":
	default:
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}
	switch d.Synchronous {
	case "FULL", "NORMAL", "OFF":
	default:
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}
	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components: ingester, scanner, metadata, rpc, archive, api
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[icommon.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := icommon.AllComponents[icommon.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[icommon.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return "info"
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return icommon.ToLowerWithTrim(level)
	}
	return icommon.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil {
		return "info"
	}
	return icommon.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	if l == nil {
		return false
	}
	return l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// APIConfig configures the REST API server.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout icommon.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// A cold pass can take a while, so this is generous by default.
	WriteTimeout icommon.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout icommon.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS contains cross-origin configuration
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = icommon.NewDuration(10 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = icommon.NewDuration(5 * time.Minute) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = icommon.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Ingester.ApplyDefaults()
	c.Metadata.ApplyDefaults()

	if c.Archive != nil {
		c.Archive.ApplyDefaults()
	}

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}

	if c.API != nil {
		c.API.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Ingester.Validate(); err != nil {
		return fmt.Errorf("ingester.%w", err)
	}

	if c.Ingester.Retry != nil {
		if err := c.Ingester.Retry.Validate(); err != nil {
			return fmt.Errorf("ingester.retry: %w", err)
		}
	}

	if err := c.Ingester.PassRetry.Validate(); err != nil {
		return fmt.Errorf("ingester.pass_retry: %w", err)
	}

	if err := c.Metadata.Validate(); err != nil {
		return fmt.Errorf("metadata.%w", err)
	}

	if c.Archive != nil && c.Archive.Enabled {
		if err := c.Archive.DB.Validate(); err != nil {
			return fmt.Errorf("archive.db.%w", err)
		}
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}
