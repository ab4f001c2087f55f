package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avrumiMuller/Mapty/internal/persistence/file"
	"github.com/avrumiMuller/Mapty/internal/persistence/memory"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := Open(ctx, Options{Driver: "memory"})
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &memory.Store{}, store)

	store, closeFn, err = Open(ctx, Options{Path: t.TempDir()})
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &file.Store{}, store)
}

func TestOpenRejectsBadConfiguration(t *testing.T) {
	ctx := context.Background()

	_, _, err := Open(ctx, Options{Driver: "postgres"})
	require.ErrorContains(t, err, "POSTGRES_URL")

	_, _, err = Open(ctx, Options{Driver: "redis"})
	require.ErrorContains(t, err, "unknown driver")
}
