package nasdaq

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/avolkov/stockdata/internal/apperror"
	"github.com/avolkov/stockdata/internal/scraper"
	"github.com/avolkov/stockdata/internal/stock"
)

// quotes_content_left_pnlAJAX is the container holding the historical
// price table on the symbol page.
const priceContainerID = "quotes_content_left_pnlAJAX"

func (s *Scraper) Prices(ctx context.Context, symbol string) ([]stock.Price, error) {
	html, err := s.fetch(ctx, fmt.Sprintf("%s/symbol/%s/historical", s.baseURL, symbol))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse historical page for %s: %w", symbol, err)
	}

	body := doc.Find("#" + priceContainerID).Find("table tbody")
	if body.Length() == 0 {
		return nil, apperror.New(apperror.Structure, "price table not found for "+symbol)
	}

	var prices []stock.Price
	// The first row is today's session: it may hold non-final numbers, and
	// on non-trading days it is simply empty. Skip it.
	rows := body.Find("tr")
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true
		}

		cells := cellTexts(row)
		if len(cells) < 6 {
			err = apperror.New(apperror.Structure, fmt.Sprintf("price row for %s has %d cells", symbol, len(cells)))
			return false
		}

		var p stock.Price
		if p.Date, err = scraper.ParseDate(cells[0]); err != nil {
			return false
		}
		if p.Open, err = scraper.ParseFloat(cells[1]); err != nil {
			return false
		}
		if p.High, err = scraper.ParseFloat(cells[2]); err != nil {
			return false
		}
		if p.Low, err = scraper.ParseFloat(cells[3]); err != nil {
			return false
		}
		if p.Close, err = scraper.ParseFloat(cells[4]); err != nil {
			return false
		}
		if p.Volume, err = scraper.ParseInt(cells[5]); err != nil {
			return false
		}

		prices = append(prices, p)
		return true
	})
	if err != nil {
		return nil, err
	}

	return prices, nil
}

// cellTexts returns the trimmed rendered text of every cell in a row.
// Rendered text matters: some cells wrap their value in a link.
func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Children().Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}
