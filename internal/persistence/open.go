// Package persistence selects the store backend used by the tracker.
package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avrumiMuller/Mapty/internal/domain"
	"github.com/avrumiMuller/Mapty/internal/persistence/file"
	"github.com/avrumiMuller/Mapty/internal/persistence/memory"
	"github.com/avrumiMuller/Mapty/internal/persistence/postgres"
)

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Options describe how to open a store.
type Options struct {
	Driver      string
	Path        string
	PostgresURL string
}

// Open returns the configured store and a function releasing its resources.
func Open(ctx context.Context, opts Options) (domain.Store, func(), error) {
	noop := func() {}
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case DriverMemory:
		return memory.NewStore(), noop, nil
	case "", DriverFile:
		store, err := file.NewStore(opts.Path)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case DriverPostgres:
		if opts.PostgresURL == "" {
			return nil, noop, fmt.Errorf("persistence: POSTGRES_URL required for postgres driver")
		}
		pool, err := pgxpool.New(ctx, opts.PostgresURL)
		if err != nil {
			return nil, noop, fmt.Errorf("persistence: connect postgres: %w", err)
		}
		store := postgres.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return store, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("persistence: unknown driver %q", opts.Driver)
	}
}
