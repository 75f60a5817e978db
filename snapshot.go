package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/ErikKalkoken/spacemap/internal/app"
	"github.com/ErikKalkoken/spacemap/internal/config"
)

var errMissingToken = errors.New("no token configured: provide one with -token or " + config.EnvToken)

// systemsFetcher fetches data from the SpaceTraders API.
type systemsFetcher interface {
	GetMyAgent(ctx context.Context) (app.Agent, error)
	FetchSystems(ctx context.Context) (*app.Snapshot, error)
}

// snapshotStore persists snapshots.
type snapshotStore interface {
	Exists() (bool, error)
	Load() (*app.Snapshot, error)
	Save(x *app.Snapshot) error
}

type prepareResult struct {
	agent    *app.Agent
	snapshot *app.Snapshot
}

// prepareSnapshot returns the snapshot of the galaxy.
//
// A stored snapshot is used unless refresh is set or no snapshot exists.
// Otherwise the galaxy is fetched from the API and stored.
// The agent is fetched whenever a token is provided.
func prepareSnapshot(ctx context.Context, fetcher systemsFetcher, store snapshotStore, refresh bool, token string) (prepareResult, error) {
	var r prepareResult
	if token != "" {
		a, err := fetcher.GetMyAgent(ctx)
		if err != nil {
			return r, err
		}
		slog.Info(
			"Agent",
			"symbol", a.Symbol,
			"headquarters", a.Headquarters,
			"credits", humanize.Comma(a.Credits),
			"faction", a.StartingFaction,
			"ships", a.ShipCount,
		)
		r.agent = &a
	}
	if !refresh {
		found, err := store.Exists()
		if err != nil {
			return r, err
		}
		if found {
			s, err := store.Load()
			if err != nil {
				return r, err
			}
			r.snapshot = s
			return r, nil
		}
		slog.Info("No local copy of the galaxy found")
	}
	if token == "" {
		return r, errMissingToken
	}
	s, err := fetcher.FetchSystems(ctx)
	if err != nil {
		return r, fmt.Errorf("fetch systems: %w", err)
	}
	if err := store.Save(s); err != nil {
		return r, err
	}
	r.snapshot = s
	return r, nil
}
