package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/stockdata/internal/config"
	"github.com/avolkov/stockdata/internal/ingest"
	"github.com/avolkov/stockdata/internal/platform/sqlite"
	stockrepo "github.com/avolkov/stockdata/internal/repository/stock"
	"github.com/avolkov/stockdata/internal/scraper"
	"github.com/avolkov/stockdata/internal/scraper/nasdaq"
)

var (
	flagWorkers int
	flagFile    string
	flagDB      string
	flagTimeout time.Duration
	flagBaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "stockdata",
	Short: "Parse nasdaq.com for stocks' historical prices and insider trades.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
	SilenceUsage: true,
}

func init() {
	cfg := config.Load()
	rootCmd.Flags().IntVarP(&flagWorkers, "workers", "N", cfg.Workers, "number of workers")
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", cfg.File, "path to the file with stocks' names")
	rootCmd.Flags().StringVar(&flagDB, "db", cfg.DBPath, "sqlite database path")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", cfg.Timeout, "fetch timeout per request")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", cfg.BaseURL, "data provider root URL")
}

func run() error {
	symbols, err := ingest.ReadSymbols(flagFile)
	if err != nil {
		slog.Error("file not found", "path", flagFile, "error", err)
		os.Exit(1)
	}

	db, err := sqlite.Open(flagDB)
	if err != nil {
		slog.Error("failed to open database", "path", flagDB, "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// Cancelled on SIGINT/SIGTERM so in-flight symbol jobs stop promptly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := ingest.NewService(
		stockrepo.NewRepository(db.DB),
		func() scraper.Scraper {
			return nasdaq.New(nasdaq.WithBaseURL(flagBaseURL), nasdaq.WithTimeout(flagTimeout))
		},
		flagWorkers,
	)

	if err := svc.Run(ctx, symbols); err != nil {
		return err
	}

	slog.Info("run finished", "symbols", len(symbols))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
