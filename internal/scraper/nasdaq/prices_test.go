package nasdaq

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avolkov/stockdata/internal/apperror"
)

func pricePage(rows ...string) string {
	body := ""
	for _, r := range rows {
		body += r
	}
	return fmt.Sprintf(`<html><body>
		<div id="quotes_content_left_pnlAJAX">
		<table><tbody>%s</tbody></table>
		</div>
		</body></html>`, body)
}

func priceRow(date, open, high, low, closing, volume string) string {
	return fmt.Sprintf(
		"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
		date, open, high, low, closing, volume,
	)
}

func TestPrices(t *testing.T) {
	page := pricePage(
		// Today's row: may be incomplete, must be dropped.
		"<tr><td></td><td></td><td></td><td></td><td></td><td></td></tr>",
		priceRow("01/15/2018", "1,100.50", "1,120", "1,090.25", "1,110", "2,345,678"),
		priceRow("01/12/2018", "1,080", "1,105", "1,075", "1,100.50", "1,234,567"),
		priceRow("01/11/2018", "1,070", "1,085", "1,060", "1,080", "987,654"),
	)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/symbol/ABC/historical" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, page)
	}))
	defer ts.Close()

	s := New(WithBaseURL(ts.URL))
	prices, err := s.Prices(context.Background(), "ABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(prices) != 3 {
		t.Fatalf("expected 3 prices (first row dropped), got %d", len(prices))
	}

	first := prices[0]
	if !first.Date.Equal(time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date: %v", first.Date)
	}
	if first.Open != 1100.50 {
		t.Errorf("expected open 1100.50, got %f", first.Open)
	}
	if first.Volume != 2345678 {
		t.Errorf("expected volume 2345678, got %d", first.Volume)
	}

	// Source order is preserved: newest first as published.
	if !prices[2].Date.Equal(time.Date(2018, 1, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected last date: %v", prices[2].Date)
	}
}

func TestPrices_SingleDataRow(t *testing.T) {
	// Only today's row present: nothing to return, but not an error.
	page := pricePage(priceRow("01/15/2018", "1", "1", "1", "1", "1"))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer ts.Close()

	s := New(WithBaseURL(ts.URL))
	prices, err := s.Prices(context.Background(), "ABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("expected 0 prices, got %d", len(prices))
	}
}

func TestPrices_MissingContainer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>layout changed</p></body></html>")
	}))
	defer ts.Close()

	s := New(WithBaseURL(ts.URL))
	_, err := s.Prices(context.Background(), "ABC")
	if err == nil {
		t.Fatal("expected error for missing container")
	}
	if apperror.CodeOf(err) != apperror.Structure {
		t.Errorf("expected STRUCTURE code, got %q", apperror.CodeOf(err))
	}
}

func TestPrices_BadCell(t *testing.T) {
	page := pricePage(
		priceRow("01/15/2018", "1", "1", "1", "1", "1"),
		priceRow("01/12/2018", "not-a-number", "1", "1", "1", "1"),
	)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer ts.Close()

	s := New(WithBaseURL(ts.URL))
	_, err := s.Prices(context.Background(), "ABC")
	if err == nil {
		t.Fatal("expected error for malformed cell")
	}
	if apperror.CodeOf(err) != apperror.Format {
		t.Errorf("expected FORMAT code, got %q", apperror.CodeOf(err))
	}
}

func TestFetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	s := New(WithBaseURL(ts.URL), WithTimeout(50*time.Millisecond))
	_, err := s.Prices(context.Background(), "ABC")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if apperror.CodeOf(err) != apperror.Timeout {
		t.Errorf("expected TIMEOUT code, got %q", apperror.CodeOf(err))
	}
}
