package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// API paths with account details in the response body.
var redactedPaths = []string{"/my/agent"}

// apiErrorEnvelope is the body of an error response from the SpaceTraders API.
type apiErrorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
		Data    struct {
			RetryAfter float64 `json:"retryAfter"`
		} `json:"data"`
	} `json:"error"`
}

// logResponse is the response hook of the API client.
//
// Error responses are logged as warning. Errors in the API's envelope format are logged
// with their message and code instead of the raw body.
// All other responses are only logged with headers and body when DEBUG is enabled.
func logResponse(_ retryablehttp.Logger, r *http.Response) {
	ctx := context.Background()
	level := slog.LevelDebug
	if r.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	if !slog.Default().Enabled(ctx, level) {
		return
	}
	attrs := []slog.Attr{
		slog.String("method", r.Request.Method),
		slog.String("path", r.Request.URL.Path),
		slog.String("status", statusText(r)),
	}
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		attrs = append(attrs, slog.Any("header", r.Header))
	}
	if a, ok := responseBodyAttr(r); ok {
		attrs = append(attrs, a)
	}
	slog.LogAttrs(ctx, level, "API response", attrs...)
}

// responseBodyAttr returns the body of r as log attribute.
// It reports false when there is no body.
func responseBodyAttr(r *http.Response) (slog.Attr, bool) {
	if slices.ContainsFunc(redactedPaths, func(p string) bool {
		return strings.HasSuffix(r.Request.URL.Path, p)
	}) {
		return slog.String("body", "redacted"), true
	}
	body, err := peekBody(r)
	if err != nil {
		return slog.String("bodyError", err.Error()), true
	}
	if len(body) == 0 {
		return slog.Attr{}, false
	}
	if !isJSON(r.Header) {
		return slog.String("body", string(body)), true
	}
	if r.StatusCode >= 400 {
		var e apiErrorEnvelope
		if err := json.Unmarshal(body, &e); err == nil && e.Error != nil {
			args := []any{"message", e.Error.Message, "code", e.Error.Code}
			if e.Error.Data.RetryAfter > 0 {
				args = append(args, "retryAfter", e.Error.Data.RetryAfter)
			}
			return slog.Group("error", args...), true
		}
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return slog.String("body", string(body)), true
	}
	return slog.Any("body", v), true
}

// peekBody returns the body of r and leaves it readable for the client.
func peekBody(r *http.Response) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func isJSON(h http.Header) bool {
	t, _, err := mime.ParseMediaType(h.Get("Content-Type"))
	return err == nil && t == "application/json"
}

// statusText returns the status code of a response together with its name.
func statusText(r *http.Response) string {
	s := http.StatusText(r.StatusCode)
	if r.StatusCode == http.StatusTooManyRequests {
		s = "Rate Limited"
	}
	return fmt.Sprintf("%d %s", r.StatusCode, s)
}
