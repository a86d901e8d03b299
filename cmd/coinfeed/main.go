package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	icommon "github.com/goran-ethernal/CoinFeed/internal/common"
	"github.com/goran-ethernal/CoinFeed/internal/config"
	"github.com/goran-ethernal/CoinFeed/internal/ingester"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	"github.com/goran-ethernal/CoinFeed/internal/metrics"
	"github.com/goran-ethernal/CoinFeed/pkg/api"
	"github.com/goran-ethernal/CoinFeed/pkg/coin"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║             CoinFeed v%s               ║
║     Music Coin Ingestion Service          ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
	outputJSON bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coinfeed",
	Short: "CoinFeed - music coin ingestion service",
	Long: `CoinFeed scans the coin factory for CoinCreated events carrying the platform
referrer, resolves each coin's off-chain metadata and serves the resulting coin
set from a short-lived cache.`,
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "Run a single ingestion pass and print the coins",
	RunE:  runCoins,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	coinsCmd.Flags().BoolVar(&outputJSON, "json", false, "print coins as JSON")

	rootCmd.AddCommand(serveCmd, coinsCmd, schemaCmd)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Println("\n\nShutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	log := logger.NewComponentLoggerFromConfig(icommon.ComponentIngester, cfg.Logging)
	defer func() { _ = log.Close() }()

	a, err := newApp(ctx, cfg, ingester.WithProgress(func(msg string) {
		log.Info(msg)
	}))
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warnf("Failed to close: %v", err)
		}
	}()

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, log.WithComponent("metrics"))
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := metricsServer.Stop(context.Background()); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	// warm the cache so the first request is served immediately
	go func() {
		if _, err := a.ingester.FetchWithRetry(ctx, false); err != nil && ctx.Err() == nil {
			log.Errorf("Initial ingestion pass failed: %v", err)
		}
	}()

	if cfg.API == nil || !cfg.API.Enabled {
		log.Warn("API server is not enabled, running ingestion only")
		<-ctx.Done()
		return nil
	}

	var archive api.ArchiveReader
	if a.archive != nil {
		archive = a.archive
	}

	apiServer := api.NewServer(
		cfg.API,
		a.ingester,
		archive,
		logger.NewComponentLoggerFromConfig(icommon.ComponentAPI, cfg.Logging),
	)

	log.Info("Starting CoinFeed...")
	if err := apiServer.Start(ctx); err != nil {
		return err
	}

	log.Info("CoinFeed stopped successfully")
	return nil
}

func runCoins(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	stderr := cmd.ErrOrStderr()
	a, err := newApp(ctx, cfg, ingester.WithProgress(func(msg string) {
		fmt.Fprintln(stderr, msg)
	}))
	if err != nil {
		return err
	}
	defer a.Close()

	// a fresh process has nothing cached, so every run is a full pass
	coins, err := a.ingester.FetchWithRetry(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to fetch coins: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(coins)
	}

	return printCoins(cmd, coins)
}

func printCoins(cmd *cobra.Command, coins []coin.CoinRecord) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BLOCK\tADDRESS\tSYMBOL\tNAME\tARTIST\tGENRE")
	for _, c := range coins {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.BlockNumber, c.Address.Hex(), c.Symbol, c.Name, c.ArtistName, c.Genre)
	}
	return w.Flush()
}
