package stock

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "github.com/avolkov/stockdata/internal/stock"
)

const (
	dateFormat = "2006-01-02"
	batchSize  = 500
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Clear wipes all rows from every table in one transaction. Child rows go
// first so the foreign keys stay satisfied at each step.
func (r *Repository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"price", "trade", "stock"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

// SaveStock inserts the stock row and all of its prices in one transaction,
// so either the symbol appears with its full price history or not at all.
func (r *Repository) SaveStock(ctx context.Context, symbol string, prices []domain.Price) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save stock: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "INSERT INTO stock (name) VALUES (?)", symbol)
	if err != nil {
		return 0, fmt.Errorf("insert stock %s: %w", symbol, err)
	}
	stockID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("stock id for %s: %w", symbol, err)
	}

	for i := 0; i < len(prices); i += batchSize {
		end := i + batchSize
		if end > len(prices) {
			end = len(prices)
		}
		batch := prices[i:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*7)
		for j, p := range batch {
			placeholders[j] = "(?, ?, ?, ?, ?, ?, ?)"
			args = append(args, stockID, p.Date.Format(dateFormat), p.Open, p.High, p.Low, p.Close, p.Volume)
		}

		query := fmt.Sprintf( //nolint:gosec // placeholders are not user input
			"INSERT INTO price (stock_id, date, open, high, low, close, volume) VALUES %s",
			strings.Join(placeholders, ", "),
		)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert prices for %s: %w", symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save stock: %w", err)
	}
	return stockID, nil
}

// SaveTrades bulk-inserts trades for a stock id persisted earlier. Runs in
// its own transaction; nullable cells travel as nil pointers and land as
// SQL NULLs.
func (r *Repository) SaveTrades(ctx context.Context, stockID int64, trades []domain.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save trades: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := 0; i < len(trades); i += batchSize {
		end := i + batchSize
		if end > len(trades) {
			end = len(trades)
		}
		batch := trades[i:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*9)
		for j, t := range batch {
			placeholders[j] = "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
			args = append(args,
				stockID, t.Insider, nullString(t.Relation), nullDate(t.LastDate),
				nullString(t.Transaction), nullString(t.OwnerType),
				t.SharesTraded, nullFloat(t.LastPrice), t.SharesHeld,
			)
		}

		query := fmt.Sprintf( //nolint:gosec // placeholders are not user input
			`INSERT INTO trade (stock_id, insider, relation, last_date, "transaction", owner_type, shares_traded, last_price, shares_held) VALUES %s`,
			strings.Join(placeholders, ", "),
		)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert trades for stock %d: %w", stockID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save trades: %w", err)
	}
	return nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateFormat)
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
