// Package fxrates looks up conversion rates that turn quote-currency P&L
// into USD.
package fxrates

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/pnl"
)

const maxRetries = 3

// ErrUnsupportedCurrency is returned for codes the rate source cannot price,
// including the "Other" placeholder.
var ErrUnsupportedCurrency = errors.New("unsupported quote currency")

// Provider returns the conversion rate for a quote currency in the
// convention pnl.Compute expects.
type Provider interface {
	ConversionRate(ctx context.Context, quote string) (decimal.Decimal, error)
}

// Client fetches USD-based rates from a frankfurter-compatible endpoint.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
	backoff func(attempt int) time.Duration
}

var _ Provider = (*Client)(nil)

// NewClient creates a rate client from configuration.
func NewClient(cfg *config.FXRates, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		client:  client,
		logger:  logger.Named("fxrates"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
		backoff: exponentialBackoff,
	}
}

// LatestResponse is the body of GET /latest.
type LatestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Latest returns units of each currency per one USD.
func (c *Client) Latest(ctx context.Context) (*LatestResponse, error) {
	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("base", "USD").
		SetResult(&LatestResponse{})

	resp, err := c.doRequest(ctx, http.MethodGet, "/latest", req)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest rates: %w", err)
	}
	return resp.Result().(*LatestResponse), nil
}

// ConversionRate returns the rate for quote. Divide-class currencies
// (JPY, CAD, CHF) get units per USD; the rest get USD per unit. USD is 1.
func (c *Client) ConversionRate(ctx context.Context, quote string) (decimal.Decimal, error) {
	code := strings.ToUpper(strings.TrimSpace(quote))
	conv := pnl.ConversionFor(code)
	if conv == pnl.NoConversion {
		return decimal.NewFromInt(1), nil
	}
	if code == "OTHER" {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, quote)
	}

	latest, err := c.Latest(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	perUSD, ok := latest.Rates[code]
	if !ok || perUSD.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, quote)
	}

	if conv == pnl.Divide {
		return perUSD, nil
	}
	return decimal.NewFromInt(1).Div(perUSD), nil
}

// doRequest executes req with rate limiting. 429 and 5xx responses and
// transport errors are retried up to maxRetries attempts in total; no wait
// follows the last attempt.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err := req.Execute(method, url)
		if err == nil && !resp.IsError() {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		wait, retryable := c.retryDelay(resp, err)
		if !retryable {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}
		if err == nil {
			err = fmt.Errorf("status %s", resp.Status())
		}
		lastErr = err

		if attempt == maxRetries-1 {
			break
		}
		if wait == 0 {
			wait = c.backoff(attempt)
		}
		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", attempt+1),
			zap.Duration("retry_after", wait),
			zap.Error(err),
		)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

// retryDelay classifies a failed attempt. The delay is non-zero only when
// a 429 carries Retry-After; otherwise the backoff schedule applies.
func (c *Client) retryDelay(resp *resty.Response, err error) (time.Duration, bool) {
	if err != nil {
		return 0, true
	}
	switch code := resp.StatusCode(); {
	case code == http.StatusTooManyRequests:
		if seconds, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second, true
		}
		return 0, true
	case code >= http.StatusInternalServerError:
		return 0, true
	default:
		return 0, false
	}
}

// exponentialBackoff waits 1s, 2s, 4s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}
