package scraper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avolkov/stockdata/internal/apperror"
)

// Table cells arrive as rendered text: dates as MM/DD/YYYY, numbers with
// thousands-separator commas. Stripping the separators before parsing keeps
// the conversion independent of the host locale. A cell that does not match
// its expected shape fails the whole symbol's run; there is no cell-level
// recovery.

// ParseDate parses an MM/DD/YYYY cell.
func ParseDate(cell string) (time.Time, error) {
	t, err := time.Parse("01022006", strings.ReplaceAll(cell, "/", ""))
	if err != nil {
		return time.Time{}, apperror.Wrap(apperror.Format, fmt.Sprintf("bad date cell %q", cell), err)
	}
	return t, nil
}

// ParseFloat parses a decimal cell such as "1,234.50".
func ParseFloat(cell string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return 0, apperror.Wrap(apperror.Format, fmt.Sprintf("bad number cell %q", cell), err)
	}
	return f, nil
}

// ParseInt parses a count cell such as "12,345".
func ParseInt(cell string) (int64, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(cell, ",", ""), 10, 64)
	if err != nil {
		return 0, apperror.Wrap(apperror.Format, fmt.Sprintf("bad count cell %q", cell), err)
	}
	return n, nil
}

// The nullable variants map an empty cell to nil without attempting a
// parse; anything non-empty must still be well formed.

func ParseNullString(cell string) *string {
	if cell == "" {
		return nil
	}
	return &cell
}

func ParseNullDate(cell string) (*time.Time, error) {
	if cell == "" {
		return nil, nil
	}
	t, err := ParseDate(cell)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ParseNullFloat(cell string) (*float64, error) {
	if cell == "" {
		return nil, nil
	}
	f, err := ParseFloat(cell)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
