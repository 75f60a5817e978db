package httptransport_test

import (
	"bytes"
	"log"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/ErikKalkoken/spacemap/internal/httptransport"
)

func TestRateLimiter(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer func() {
		log.SetOutput(os.Stderr)
	}()
	t.Run("should pass on response", func(t *testing.T) {
		// given
		myClient := &http.Client{
			Transport: &httptransport.RateLimiter{},
		}
		slog.SetLogLoggerLevel(slog.LevelInfo)
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"https://www.example.com/",
			httpmock.NewStringResponder(http.StatusOK, "Test"))
		// when
		r, err := myClient.Get("https://www.example.com/")
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusOK, r.StatusCode)
			assert.Equal(t, 1, httpmock.GetTotalCallCount())
		}
	})
	t.Run("should space out requests", func(t *testing.T) {
		// given
		myClient := &http.Client{
			Transport: &httptransport.RateLimiter{RequestsPerSecond: 20, Burst: 1},
		}
		slog.SetLogLoggerLevel(slog.LevelInfo)
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"https://www.example.com/",
			httpmock.NewStringResponder(http.StatusOK, "Test"))
		// when
		start := time.Now()
		for range 3 {
			_, err := myClient.Get("https://www.example.com/")
			if !assert.NoError(t, err) {
				t.FailNow()
			}
		}
		// then
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
		assert.Equal(t, 3, httpmock.GetTotalCallCount())
	})
	t.Run("should pass on 429 and log warning", func(t *testing.T) {
		// given
		myClient := &http.Client{
			Transport: &httptransport.RateLimiter{},
		}
		slog.SetLogLoggerLevel(slog.LevelInfo)
		buf.Reset()
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"https://www.example.com/",
			httpmock.NewStringResponder(http.StatusTooManyRequests, "Test").HeaderSet(http.Header{
				"X-Ratelimit-Type": []string{"IP_ADDRESS"},
			}))
		// when
		r, err := myClient.Get("https://www.example.com/")
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusTooManyRequests, r.StatusCode)
			assert.Equal(t, 1, httpmock.GetTotalCallCount())
			assert.Contains(t, buf.String(), "WARN Rate limit exceeded method=GET url=https://www.example.com/ type=IP_ADDRESS")
		}
	})
	t.Run("should never log authorization headers in request", func(t *testing.T) {
		// given
		myClient := &http.Client{
			Transport: &httptransport.RateLimiter{},
		}
		slog.SetLogLoggerLevel(slog.LevelDebug)
		buf.Reset()
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"https://www.example.com/",
			httpmock.NewStringResponder(http.StatusOK, "Test"))
		req, err := http.NewRequest("GET", "https://www.example.com/", nil)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer token")
		req.Header.Set("Dummy", "alpha")
		// when
		r, err := myClient.Do(req)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusOK, r.StatusCode)
			assert.Contains(t, buf.String(), "DEBUG HTTP request method=GET url=https://www.example.com/ header=\"map[Authorization:[REDACTED] Dummy:[alpha]]\" body=")
			assert.NotContains(t, buf.String(), "Bearer token")
		}
	})
}
