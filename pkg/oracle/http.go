package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// HTTPClient talks to a Yahoo-style quote provider:
//
//	GET {base}/v7/finance/quote?symbols=AAPL
//	GET {base}/v8/finance/chart/AAPL?period1=...&period2=...&interval=1d
//
// The base URL is configurable so tests can point it at a local server.
type HTTPClient struct {
	base    string
	http    *http.Client
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewHTTPClient(base string, timeout time.Duration, logger *zap.SugaredLogger) *HTTPClient {
	return &HTTPClient{
		base:    base,
		http:    &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Quote fetches the current regular-market price for symbol. One attempt,
// bounded by the configured timeout; any failure collapses to
// ErrPriceUnavailable.
func (c *HTTPClient) Quote(ctx context.Context, symbol string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base + "/v7/finance/quote?symbols=" + url.QueryEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("quote_request_failed", "symbol", symbol, "err", err)
		return 0, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw("quote_provider_error", "symbol", symbol, "status", resp.StatusCode)
		return 0, fmt.Errorf("%w: provider returned %d", ErrPriceUnavailable, resp.StatusCode)
	}

	var qr quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}

	results := qr.QuoteResponse.Result
	if len(results) == 0 || results[0].RegularMarketPrice == nil {
		return 0, fmt.Errorf("%w: no quote for %s", ErrPriceUnavailable, symbol)
	}

	return *results[0].RegularMarketPrice, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// History fetches daily candles for symbol from `from` until now.
func (c *HTTPClient) History(ctx context.Context, symbol string, from time.Time) ([]Candle, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%s&period2=%s&interval=1d",
		c.base,
		url.PathEscape(symbol),
		strconv.FormatInt(from.Unix(), 10),
		strconv.FormatInt(time.Now().Unix(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("history_request_failed", "symbol", symbol, "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned %d for %s", resp.StatusCode, symbol)
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}

	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no history for %s", symbol)
	}

	series := cr.Chart.Result[0]
	quote := series.Indicators.Quote[0]

	candles := make([]Candle, 0, len(series.Timestamp))
	for i, ts := range series.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		candles = append(candles, Candle{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  at(quote.Close, i),
			Volume: atInt(quote.Volume, i),
		})
	}

	return candles, nil
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

func atInt(xs []int64, i int) int64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

var _ Client = (*HTTPClient)(nil)
