// Package spacetraders is a client for the SpaceTraders API.
package spacetraders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/ErikKalkoken/spacemap/internal/app"
	"github.com/ErikKalkoken/spacemap/internal/metrics"
)

// DefaultBaseURL is the base URL of the live SpaceTraders API.
const DefaultBaseURL = "https://api.spacetraders.io/v2"

const (
	endpointAgent   = "my/agent"
	endpointSystems = "systems"
)

// Client is a client for the SpaceTraders API.
type Client struct {
	// Sleep waits for the duration d or until the context is canceled.
	// Can be overwritten for tests.
	Sleep func(ctx context.Context, d time.Duration) error

	baseURL    string
	httpClient *retryablehttp.Client
	metrics    *metrics.Metrics
	token      string
}

type Params struct {
	// BaseURL is the base URL of the API. Uses [DefaultBaseURL] when empty.
	BaseURL string
	// HTTPClient is used for all requests. Uses [NewHTTPClient] when nil.
	HTTPClient *retryablehttp.Client
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Token is the bearer token of the agent.
	Token string
}

// New returns a new client.
func New(arg Params) *Client {
	c := &Client{
		Sleep:      sleep,
		baseURL:    strings.TrimSuffix(arg.BaseURL, "/"),
		httpClient: arg.HTTPClient,
		metrics:    arg.Metrics,
		token:      arg.Token,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(nil)
	}
	return c
}

// NewHTTPClient returns a new HTTP client for the API using the given transport.
//
// Automatic retries are disabled, because only the caller can decide
// whether a failed request can be retried safely.
func NewHTTPClient(transport http.RoundTripper) *retryablehttp.Client {
	rhc := retryablehttp.NewClient()
	if transport != nil {
		rhc.HTTPClient.Transport = transport
	}
	rhc.Logger = slog.Default()
	rhc.RetryMax = 0
	rhc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, nil
	}
	rhc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rhc
}

type agentResponse struct {
	Data *app.Agent `json:"data"`
}

// GetMyAgent returns the agent belonging to the token.
func (c *Client) GetMyAgent(ctx context.Context) (app.Agent, error) {
	var r agentResponse
	if err := c.get(ctx, endpointAgent, nil, 0, &r); err != nil {
		return app.Agent{}, err
	}
	if r.Data == nil {
		return app.Agent{}, newFetchError(0, KindDecode, http.StatusOK, errors.New("missing data"))
	}
	return *r.Data, nil
}

// apiErrorResponse is the body of all error responses.
type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
		Data    struct {
			RetryAfter *float64 `json:"retryAfter"`
		} `json:"data"`
	} `json:"error"`
}

// get makes a GET request to an endpoint and decodes the response body into v.
// The page number is only used for reporting errors.
func (c *Client) get(ctx context.Context, endpoint string, query map[string]string, page int, v any) error {
	url := c.baseURL + "/" + endpoint
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return newFetchError(page, KindTransport, 0, err)
	}
	q := req.URL.Query()
	for k, x := range query {
		q.Set(k, x)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, 0, time.Since(start))
		return newFetchError(page, KindTransport, 0, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRequest(endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return newFetchError(page, KindTransport, resp.StatusCode, err)
	}
	switch s := resp.StatusCode; {
	case s == http.StatusTooManyRequests:
		d, err := parseRetryAfter(resp, data)
		if err != nil {
			return newFetchError(page, KindDecode, s, err)
		}
		return &rateLimitedError{retryAfter: d}
	case s == http.StatusUnauthorized || s == http.StatusForbidden:
		return newFetchError(page, KindAuth, s, apiErrorMessage(data))
	case s < 200 || s >= 300:
		return newFetchError(page, KindStatus, s, apiErrorMessage(data))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return newFetchError(page, KindDecode, resp.StatusCode, err)
	}
	return nil
}

// parseRetryAfter returns the wait duration of a rate limited response.
// The duration in the body takes precedence over the Retry-After header.
func parseRetryAfter(resp *http.Response, data []byte) (time.Duration, error) {
	var r apiErrorResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return 0, fmt.Errorf("rate limit response: %w", err)
	}
	if x := r.Error.Data.RetryAfter; x != nil {
		if *x < 0 || math.IsNaN(*x) || math.IsInf(*x, 0) {
			return 0, fmt.Errorf("rate limit response: invalid retryAfter: %v", *x)
		}
		return time.Duration(*x * float64(time.Second)), nil
	}
	if h := resp.Header.Get("Retry-After"); h != "" {
		v, err := strconv.ParseFloat(h, 64)
		if err == nil && v >= 0 {
			return time.Duration(v * float64(time.Second)), nil
		}
	}
	return 0, errors.New("rate limit response: missing retryAfter")
}

// apiErrorMessage returns the message from an error response body as error.
func apiErrorMessage(data []byte) error {
	var r apiErrorResponse
	if err := json.Unmarshal(data, &r); err != nil || r.Error.Message == "" {
		return nil
	}
	return errors.New(r.Error.Message)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
