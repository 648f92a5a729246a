// Package fetch implements a retrying HTTP client on top of a Colly collector.
package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Config controls client behavior.
type Config struct {
	// UserAgent is sent on every request. Defaults to a browser identity;
	// several of the portals reject obvious non-browser clients.
	UserAgent string
	// Timeout bounds each individual request attempt.
	Timeout time.Duration
	// MaxRetries is the number of re-attempts after the first failure.
	MaxRetries int
	// Backoff is the delay before the first retry; it doubles per attempt.
	Backoff time.Duration
}

// Error is the terminal failure for a URL after all retries are spent.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client issues HTTP GETs with bounded retry and multiplicative backoff.
type Client struct {
	cfg           Config
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// New builds a Client around a shared collector with a pooled transport.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Backoff == 0 {
		cfg.Backoff = 500 * time.Millisecond
	}

	c := colly.NewCollector(colly.Async(false))
	c.WithTransport(newHTTPTransport())

	return &Client{
		cfg:           cfg,
		baseCollector: c,
		logger:        logger,
	}
}

// Get fetches url, retrying transport errors and HTTP 502/503/504 up to
// MaxRetries times. The returned error is always a *Error on failure.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var (
		lastErr    error
		lastStatus int
	)
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.Backoff << (attempt - 1)
			c.logger.Debug("Retrying fetch",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
			)
			select {
			case <-ctx.Done():
				return nil, &Error{URL: url, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		body, status, err := c.visit(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr, lastStatus = err, status
		if ctx.Err() != nil {
			// The caller gave up; a per-attempt timeout is retryable but
			// caller cancellation is final.
			break
		}
		if !retryable(status) {
			break
		}
	}
	return nil, &Error{URL: url, Status: lastStatus, Err: lastErr}
}

// visit runs one GET through a cloned collector and captures the outcome.
func (c *Client) visit(ctx context.Context, url string) ([]byte, int, error) {
	collector := c.baseCollector.Clone()
	collector.AllowURLRevisit = true
	collector.IgnoreRobotsTxt = true
	if c.cfg.UserAgent != "" {
		collector.UserAgent = c.cfg.UserAgent
	}
	collector.SetRequestTimeout(c.cfg.Timeout)

	var (
		body     []byte
		status   int
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		// Wait for the attempt to finish so the collector callbacks are
		// not still writing to status/body. The request timeout bounds
		// this wait.
		<-done
		return nil, status, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, status, err
		}
		if fetchErr != nil {
			return nil, status, fetchErr
		}
		return body, status, nil
	}
}

// retryable reports whether the failure is worth another attempt: gateway
// errors and transport-level faults. Status 0 means the request never
// completed — a connect or read failure, including a per-attempt timeout.
// Caller cancellation is caught in Get before this is consulted.
func retryable(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	if status != 0 {
		// Any other definitive HTTP status is final.
		return false
	}
	return true
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
