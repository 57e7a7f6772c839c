// Package nasdaq scrapes historical prices and insider trades from
// nasdaq.com symbol pages. The pages carry no API; the data lives in HTML
// tables, so everything here is coupled to the page markup. All markup
// knowledge (container ids, table classes, pagination controls) stays
// inside this package.
package nasdaq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/avolkov/stockdata/internal/apperror"
)

const (
	defaultBaseURL = "https://www.nasdaq.com"
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// Bounded-loop cap on insider-trade pagination. Some symbols publish
	// very long trade histories; following "next" links past this point is
	// never worth the time.
	maxTradePages = 10
)

// Scraper fetches and parses one symbol's pages. It owns its HTTP client,
// so its lifetime should match one symbol job.
type Scraper struct {
	client  *resty.Client
	baseURL string
}

func New(opts ...Option) *Scraper {
	client := resty.New()
	client.SetTimeout(defaultTimeout)
	client.SetHeader("User-Agent", userAgent)

	s := &Scraper{
		client:  client,
		baseURL: defaultBaseURL,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type Option func(*Scraper)

func WithBaseURL(u string) Option {
	return func(s *Scraper) { s.baseURL = u }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.client.SetTimeout(d) }
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = resty.NewWithClient(c).SetHeader("User-Agent", userAgent) }
}

// fetch issues a single GET and returns the body. A timeout is logged with
// the offending URL and classified, so the caller can tell it apart from a
// page-layout failure; it is never retried here.
func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	res, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		if isTimeout(err) {
			slog.Error("timeout exceeded", "url", url)
			return "", apperror.Wrap(apperror.Timeout, "fetch "+url, err)
		}
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", url, res.StatusCode())
	}
	return res.String(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
