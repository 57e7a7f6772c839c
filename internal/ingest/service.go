package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/avolkov/stockdata/internal/apperror"
	"github.com/avolkov/stockdata/internal/scraper"
	"github.com/avolkov/stockdata/internal/stock"
)

// Service drives one ingestion run: clear the store, then fan the symbol
// list out across a bounded worker pool where each worker takes a symbol
// through fetch, parse and write to completion.
type Service struct {
	repo       stock.Repository
	newScraper func() scraper.Scraper
	workers    int
}

// NewService creates a driver. newScraper is called once per symbol job so
// every job gets its own HTTP client for the job's lifetime.
func NewService(repo stock.Repository, newScraper func() scraper.Scraper, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		repo:       repo,
		newScraper: newScraper,
		workers:    workers,
	}
}

// ReadSymbols loads the ticker list: one symbol per line, blank lines
// skipped. A missing file aborts the whole run before any work starts.
func ReadSymbols(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Wrap(apperror.Config, "read symbol file "+path, err)
	}

	var symbols []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			symbols = append(symbols, line)
		}
	}
	return symbols, nil
}

// Run executes one full ingestion cycle. Clearing must finish before any
// worker starts: leftover rows from a previous run would sit next to rows
// keyed by this run's freshly generated stock ids, and trades carry no
// natural key to deduplicate on.
func (s *Service) Run(ctx context.Context, symbols []string) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			if err := s.process(ctx, symbol); err != nil {
				// A failed symbol contributes no rows; siblings and their
				// committed data are untouched.
				slog.Error("symbol failed", "symbol", symbol, "code", apperror.CodeOf(err), "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) process(ctx context.Context, symbol string) error {
	sc := s.newScraper()

	prices, err := sc.Prices(ctx, symbol)
	if err != nil {
		return err
	}
	trades, err := sc.Trades(ctx, symbol)
	if err != nil {
		return err
	}

	stockID, err := s.repo.SaveStock(ctx, symbol, prices)
	if err != nil {
		return err
	}
	if err := s.repo.SaveTrades(ctx, stockID, trades); err != nil {
		return err
	}

	slog.Info("symbol ingested", "symbol", symbol, "stock_id", stockID,
		"prices", len(prices), "trades", len(trades))
	return nil
}
