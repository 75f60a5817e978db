package spacetraders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ErikKalkoken/go-set"
	"github.com/dustin/go-humanize"

	"github.com/ErikKalkoken/spacemap/internal/app"
)

// SystemsPageSize is the number of systems requested per page.
const SystemsPageSize = 20

// maxCapacityHint limits the memory reserved up front for a galaxy.
// The total is reported by the server and can not be trusted.
const maxCapacityHint = 10_000

type systemsPage struct {
	Data []app.System `json:"data"`
	Meta *struct {
		Total int `json:"total"`
		Page  int `json:"page"`
		Limit int `json:"limit"`
	} `json:"meta"`
}

// FetchSystems downloads all systems of the galaxy and returns them as snapshot.
//
// Pages are fetched one after the other. The total number of systems is taken from the first page.
// When a page is rate limited the client waits for the duration requested by the server
// and then requests the same page again.
// All other failures abort the download and are returned as [*FetchError].
func (c *Client) FetchSystems(ctx context.Context) (*app.Snapshot, error) {
	start := time.Now()
	first, err := c.fetchSystemsPage(ctx, 1)
	if err != nil {
		return nil, err
	}
	if first.Meta == nil {
		return nil, newFetchError(1, KindDecode, 0, errors.New("missing meta"))
	}
	total := first.Meta.Total
	if total < 0 {
		return nil, newFetchError(1, KindDecode, 0, fmt.Errorf("invalid total: %d", total))
	}
	systems := make([]app.System, 0, min(total, maxCapacityHint))
	seen := set.Of[app.Symbol]()
	remaining := total
	for page := 1; ; page++ {
		var r systemsPage
		if page == 1 {
			r = first
		} else {
			r, err = c.fetchSystemsPage(ctx, page)
			if err != nil {
				return nil, err
			}
		}
		if len(r.Data) == 0 && remaining > 0 {
			return nil, newFetchError(page, KindDecode, 0, fmt.Errorf("empty page with %d systems remaining", remaining))
		}
		for _, x := range r.Data {
			if seen.Contains(x.Symbol) {
				return nil, newFetchError(page, KindDecode, 0, fmt.Errorf("duplicate system %s", x.Symbol))
			}
			seen.Add(x.Symbol)
		}
		systems = append(systems, r.Data...)
		remaining -= len(r.Data)
		logPage(page, len(r.Data), remaining, total)
		if remaining <= 0 {
			break
		}
	}
	d := time.Since(start)
	c.metrics.ObserveFetch(d)
	slog.Info("Completed download of systems", "systems", len(systems), "duration", d.Round(time.Millisecond))
	return app.NewSnapshot(systems), nil
}

// fetchSystemsPage returns a page of systems.
// Rate limited requests are repeated until they succeed or fail for other reasons.
func (c *Client) fetchSystemsPage(ctx context.Context, page int) (systemsPage, error) {
	query := map[string]string{
		"limit": strconv.Itoa(SystemsPageSize),
		"page":  strconv.Itoa(page),
	}
	for attempt := 1; ; attempt++ {
		var r systemsPage
		err := c.get(ctx, endpointSystems, query, page, &r)
		var rl *rateLimitedError
		if errors.As(err, &rl) {
			slog.Warn("Systems page rate limited. Waiting before retry", "page", page, "retryAfter", rl.retryAfter, "attempt", attempt)
			c.metrics.ObserveRateLimitWait(rl.retryAfter)
			if err := c.Sleep(ctx, rl.retryAfter); err != nil {
				return systemsPage{}, newFetchError(page, KindTransport, 0, err)
			}
			continue
		}
		if err != nil {
			return systemsPage{}, err
		}
		c.metrics.ObservePage(len(r.Data))
		return r, nil
	}
}

func logPage(page, n, remaining, total int) {
	slog.Info(
		"Pulled systems page",
		"page", page,
		"systems", n,
		"remaining", humanize.Comma(int64(max(remaining, 0))),
		"total", humanize.Comma(int64(total)),
	)
}
