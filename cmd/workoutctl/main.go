// Command workoutctl inspects and maintains the stored workout list.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avrumiMuller/Mapty/internal/config"
	"github.com/avrumiMuller/Mapty/internal/domain"
	"github.com/avrumiMuller/Mapty/internal/persistence"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	open := func(ctx context.Context) (domain.Store, func(), error) {
		return persistence.Open(ctx, persistence.Options{
			Driver:      cfg.StoreDriver,
			Path:        cfg.StorePath,
			PostgresURL: cfg.PostgresURL,
		})
	}

	if err := newRootCmd(open, cfg.StorageKey).Execute(); err != nil {
		os.Exit(1)
	}
}
