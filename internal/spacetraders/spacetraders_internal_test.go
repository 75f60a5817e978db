package spacetraders

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRetryAfter(t *testing.T) {
	header := func(v string) *http.Response {
		r := &http.Response{Header: make(http.Header)}
		if v != "" {
			r.Header.Set("Retry-After", v)
		}
		return r
	}
	cases := []struct {
		name   string
		body   string
		header string
		want   time.Duration
		ok     bool
	}{
		{"from body", `{"error":{"data":{"retryAfter":1.25}}}`, "", 1250 * time.Millisecond, true},
		{"body takes precedence", `{"error":{"data":{"retryAfter":2}}}`, "7", 2 * time.Second, true},
		{"zero", `{"error":{"data":{"retryAfter":0}}}`, "", 0, true},
		{"from header", `{"error":{"message":"slow down"}}`, "3", 3 * time.Second, true},
		{"negative", `{"error":{"data":{"retryAfter":-1}}}`, "", 0, false},
		{"missing", `{"error":{"message":"slow down"}}`, "", 0, false},
		{"invalid header", `{}`, "tomorrow", 0, false},
		{"not json", `slow down`, "3", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseRetryAfter(header(tc.header), []byte(tc.body))
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSleep(t *testing.T) {
	t.Run("should wait for duration", func(t *testing.T) {
		start := time.Now()
		err := sleep(context.Background(), 50*time.Millisecond)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
	t.Run("should stop when context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := sleep(ctx, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
