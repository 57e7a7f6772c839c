package stock

import "context"

type Repository interface {
	// Clear deletes all price, trade and stock rows in one transaction.
	// Every run starts from an empty store: trades have no natural
	// deduplication key, so full replacement is the only safe strategy.
	Clear(ctx context.Context) error

	// SaveStock inserts a stock row for the symbol and bulk-inserts its
	// prices tagged with the generated stock id, all in one transaction.
	// Returns the generated id.
	SaveStock(ctx context.Context, symbol string, prices []Price) (int64, error)

	// SaveTrades bulk-inserts trades for an already persisted stock id
	// in its own transaction.
	SaveTrades(ctx context.Context, stockID int64, trades []Trade) error
}
