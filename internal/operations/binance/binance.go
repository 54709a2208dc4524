package binance

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/adshao/go-binance/v2"
	"golang.org/x/time/rate"
)

// maxKlinesPerRequest is Binance's kline page limit.
const maxKlinesPerRequest = 500

type Client struct {
	client      *binance.Client
	rateLimiter *rate.Limiter
	httpClient  *http.Client
}

func NewClient(apiKey, secretKey string) *Client {
	// Create custom HTTP client with timeouts
	httpClient := &http.Client{
		Timeout: time.Second * 10,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	spotClient := binance.NewClient(apiKey, secretKey)
	spotClient.HTTPClient = httpClient

	// Create rate limiter: 10 requests per second with burst of 20
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return &Client{
		client:      spotClient,
		rateLimiter: limiter,
		httpClient:  httpClient,
	}
}

// GetDailyKlines fetches one page of daily klines, retrying transient
// failures with exponential backoff.
func (c *Client) GetDailyKlines(ctx context.Context, symbol string, startTime, endTime int64) ([]*binance.Kline, error) {
	var klines []*binance.Kline
	maxRetries := 3
	backoff := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait for rate limiter
		err := c.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, err
		}

		klines, err = c.client.NewKlinesService().
			Symbol(symbol).
			Interval("1d").
			StartTime(startTime).
			EndTime(endTime).
			Limit(maxKlinesPerRequest).
			Do(ctx)

		if err == nil {
			return klines, nil
		}

		// If this was the last attempt, return the error
		if attempt == maxRetries {
			return nil, err
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * backoff

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitTime):
			continue
		}
	}

	return klines, nil
}

// GetDailyHistory fetches daily klines over an arbitrary date range,
// paging in 500-day chunks.
func (c *Client) GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]*binance.Kline, error) {
	startMs := start.UnixNano() / int64(time.Millisecond)
	endMs := end.UnixNano() / int64(time.Millisecond)
	chunkMs := int64(maxKlinesPerRequest) * (24 * time.Hour).Milliseconds()

	var allKlines []*binance.Kline
	for currentStart := startMs; currentStart < endMs; {
		currentEnd := currentStart + chunkMs
		if currentEnd > endMs {
			currentEnd = endMs
		}

		klines, err := c.GetDailyKlines(ctx, symbol, currentStart, currentEnd)
		if err != nil {
			return nil, err
		}

		allKlines = append(allKlines, klines...)
		currentStart = currentEnd
	}

	return allKlines, nil
}
