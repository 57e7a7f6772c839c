package scraper

import (
	"context"

	"github.com/avolkov/stockdata/internal/stock"
)

// Scraper fetches and parses one symbol's data from the provider.
// Implementations own their HTTP client; callers create one instance per
// symbol job and drop it when the job finishes.
type Scraper interface {
	// Prices returns the symbol's historical daily bars, newest first as
	// published, with the current (possibly incomplete) session dropped.
	Prices(ctx context.Context, symbol string) ([]stock.Price, error)

	// Trades returns the symbol's reported insider transactions across all
	// paginated result pages, in page order.
	Trades(ctx context.Context, symbol string) ([]stock.Trade, error)
}
