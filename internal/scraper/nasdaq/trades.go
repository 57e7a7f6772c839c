package nasdaq

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/avolkov/stockdata/internal/apperror"
	"github.com/avolkov/stockdata/internal/scraper"
	"github.com/avolkov/stockdata/internal/stock"
)

const (
	// The insider-trade table has no id and neither do its nearby
	// ancestors; this class belongs to the table alone.
	tradeTableClass = "certain-width"

	// quotes_content_left_lb_NextPage is a link to the next page, or a
	// <span> on the last one.
	nextPageID = "quotes_content_left_lb_NextPage"
)

func (s *Scraper) Trades(ctx context.Context, symbol string) ([]stock.Trade, error) {
	pageURL := fmt.Sprintf("%s/symbol/%s/insider-trades", s.baseURL, symbol)

	var trades []stock.Trade
	for page := 0; page < maxTradePages && pageURL != ""; page++ {
		html, err := s.fetch(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("parse insider-trades page for %s: %w", symbol, err)
		}

		pageTrades, err := parseTradeTable(doc, symbol)
		if err != nil {
			return nil, err
		}
		trades = append(trades, pageTrades...)

		pageURL, err = nextPageURL(doc, pageURL)
		if err != nil {
			return nil, err
		}
	}

	return trades, nil
}

func parseTradeTable(doc *goquery.Document, symbol string) ([]stock.Trade, error) {
	table := doc.Find("table." + tradeTableClass).First()
	if table.Length() == 0 {
		return nil, apperror.New(apperror.Structure, "insider-trade table not found for "+symbol)
	}

	var trades []stock.Trade
	var err error
	// Row 0 is the header.
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true
		}

		cells := cellTexts(row)
		if len(cells) < 8 {
			err = apperror.New(apperror.Structure, fmt.Sprintf("trade row for %s has %d cells", symbol, len(cells)))
			return false
		}

		t := stock.Trade{
			Insider:   cells[0],
			Relation:  scraper.ParseNullString(cells[1]),
			OwnerType: scraper.ParseNullString(cells[4]),
		}
		t.Transaction = scraper.ParseNullString(cells[3])
		if t.LastDate, err = scraper.ParseNullDate(cells[2]); err != nil {
			return false
		}
		if t.SharesTraded, err = scraper.ParseInt(cells[5]); err != nil {
			return false
		}
		if t.LastPrice, err = scraper.ParseNullFloat(cells[6]); err != nil {
			return false
		}
		if t.SharesHeld, err = scraper.ParseInt(cells[7]); err != nil {
			return false
		}

		trades = append(trades, t)
		return true
	})
	if err != nil {
		return nil, err
	}

	return trades, nil
}

// nextPageURL reads the pagination control. A hyperlink means another page
// follows; any other element is the terminal marker on the last page, in
// which case the result is empty.
func nextPageURL(doc *goquery.Document, current string) (string, error) {
	next := doc.Find("#" + nextPageID).First()
	if next.Length() == 0 {
		return "", apperror.New(apperror.Structure, "next-page control not found on "+current)
	}
	if !next.Is("a") {
		return "", nil
	}

	href := next.AttrOr("href", "")
	if href == "" {
		return "", nil
	}

	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parse page url %s: %w", current, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse next-page href %s: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
