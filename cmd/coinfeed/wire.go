package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CoinFeed/internal/archive"
	icommon "github.com/goran-ethernal/CoinFeed/internal/common"
	"github.com/goran-ethernal/CoinFeed/internal/ingester"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	"github.com/goran-ethernal/CoinFeed/internal/metadata"
	"github.com/goran-ethernal/CoinFeed/internal/retry"
	"github.com/goran-ethernal/CoinFeed/internal/rpc"
	"github.com/goran-ethernal/CoinFeed/internal/scanner"
	"github.com/goran-ethernal/CoinFeed/pkg/config"
)

// app holds the wired components of a running CoinFeed instance.
type app struct {
	rpc      *rpc.Client
	archive  *archive.Store
	ingester *ingester.Ingester
}

// newApp connects to the node and wires the ingestion pipeline described by cfg.
func newApp(ctx context.Context, cfg *config.Config, opts ...ingester.Option) (*app, error) {
	log := logger.NewComponentLoggerFromConfig(icommon.ComponentRPC, cfg.Logging)

	log.Info("Connecting to Ethereum node...")
	ethClient, err := rpc.NewClient(ctx, cfg.Ingester.RPCURL, cfg.Ingester.Retry)
	if err != nil {
		return nil, fmt.Errorf("failed to create RPC client: %w", err)
	}
	log.Infof("Connected to Ethereum node: %s", cfg.Ingester.RPCURL)

	sc := scanner.New(ethClient, scanner.Config{
		Factory:       common.HexToAddress(cfg.Ingester.FactoryAddress),
		Referrer:      common.HexToAddress(cfg.Ingester.PlatformReferrer),
		WindowSize:    cfg.Ingester.WindowSize,
		WindowTimeout: cfg.Ingester.WindowTimeout.Duration,
		Finality:      cfg.Ingester.Finality,
	}, logger.NewComponentLoggerFromConfig(icommon.ComponentScanner, cfg.Logging))

	resolver, err := metadata.NewResolver(
		metadata.ConfigFromMetadata(cfg.Metadata),
		&http.Client{},
		logger.NewComponentLoggerFromConfig(icommon.ComponentMetadata, cfg.Logging),
	)
	if err != nil {
		ethClient.Close()
		return nil, fmt.Errorf("failed to create metadata resolver: %w", err)
	}

	a := &app{rpc: ethClient}

	if cfg.Archive != nil && cfg.Archive.Enabled {
		store, err := archive.Open(cfg.Archive.DB, logger.NewComponentLoggerFromConfig(icommon.ComponentArchive, cfg.Logging))
		if err != nil {
			ethClient.Close()
			return nil, fmt.Errorf("failed to open archive: %w", err)
		}
		a.archive = store
		opts = append(opts, ingester.WithArchive(store))
	}

	a.ingester = ingester.New(sc, resolver, ingester.Config{
		StartBlock:       cfg.Ingester.StartBlock,
		CacheTTL:         cfg.Ingester.CacheTTL.Duration,
		Workers:          cfg.Metadata.Workers,
		PlaceholderImage: cfg.Metadata.PlaceholderImage,
		PassRetry:        retry.FromConfig(&cfg.Ingester.PassRetry, retry.DefaultJitter),
	}, logger.NewComponentLoggerFromConfig(icommon.ComponentIngester, cfg.Logging), opts...)

	return a, nil
}

// Close releases the node connection and the archive.
func (a *app) Close() error {
	a.rpc.Close()
	if a.archive != nil {
		return a.archive.Close()
	}
	return nil
}
