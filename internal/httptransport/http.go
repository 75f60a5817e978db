// Package httptransport provides custom http transport implementations.
package httptransport

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaults for RateLimiter
const (
	defaultRequestsPerSecond = 2
	defaultBurst             = 1
)

// RateLimiter is a transport which spaces out requests,
// so that they do not exceed a steady rate.
//
// Responses with status 429 are passed on to the caller,
// which is responsible for waiting and retrying.
//
// When DEBUG logging is enabled, will also log details of requests.
// Authorization headers in requests are redacted.
//
// The zero value is a valid transport with default rates.
// This type is designed to be used concurrently.
type RateLimiter struct {
	// The RoundTripper interface actually used to make requests
	// If nil, http.DefaultTransport is used
	Transport http.RoundTripper

	// Average number of requests per second. Default is used when 0 or less.
	RequestsPerSecond float64

	// Maximum number of requests which can be made at once. Default is used when 0 or less.
	Burst int

	mu      sync.Mutex
	limiter *rate.Limiter
}

var _ http.RoundTripper = (*RateLimiter)(nil)

func (t *RateLimiter) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	lim := t.getLimiter()
	start := time.Now()
	if err := lim.Wait(req.Context()); err != nil {
		return nil, err
	}
	if d := time.Since(start); d > 10*time.Millisecond {
		slog.Debug("Request delayed by rate limiter", "url", req.URL, "delay", d)
	}
	logRequest(req)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		slog.Warn(
			"Rate limit exceeded",
			"method", req.Method,
			"url", req.URL,
			"type", resp.Header.Get("X-Ratelimit-Type"),
			"limitPerSecond", resp.Header.Get("X-Ratelimit-Limit-Per-Second"),
			"reset", resp.Header.Get("X-Ratelimit-Reset"),
		)
	}
	return resp, nil
}

func (t *RateLimiter) getLimiter() *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.limiter != nil {
		return t.limiter
	}
	rps := t.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	burst := t.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	t.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return t.limiter
}

func logRequest(req *http.Request) {
	isDebug := slog.Default().Enabled(context.Background(), slog.LevelDebug)
	if !isDebug {
		return
	}
	reqBody := ""
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err == nil {
			reqBody = string(body)
			req.Body = io.NopCloser(bytes.NewBuffer(body))
		}
	}
	h := req.Header.Clone()
	if h.Get("Authorization") != "" {
		h.Set("Authorization", "REDACTED") // never log this header
	}
	slog.Debug("HTTP request", "method", req.Method, "url", req.URL, "header", h, "body", reqBody)
}
