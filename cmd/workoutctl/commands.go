package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avrumiMuller/Mapty/internal/domain"
	"github.com/avrumiMuller/Mapty/internal/view"
)

type storeOpener func(ctx context.Context) (domain.Store, func(), error)

func newRootCmd(open storeOpener, defaultKey string) *cobra.Command {
	var key string

	root := &cobra.Command{
		Use:          "workoutctl",
		Short:        "Inspect and maintain stored workouts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&key, "key", defaultKey, "storage key holding the workout list")

	withStore := func(cmd *cobra.Command, fn func(context.Context, domain.Store) error) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		store, closeStore, err := open(ctx)
		if err != nil {
			return err
		}
		defer closeStore()
		return fn(ctx, store)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store domain.Store) error {
				workouts, err := loadWorkouts(ctx, store, key)
				if err != nil {
					return err
				}
				return printList(cmd.OutOrStdout(), workouts)
			})
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored workout list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store domain.Store) error {
				if err := store.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", key)
				return nil
			})
		},
	}

	var output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored workouts as a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store domain.Store) error {
				workouts, err := loadWorkouts(ctx, store, key)
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					return writeExport(cmd.OutOrStdout(), workouts)
				}
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				if err := writeExport(f, workouts); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "-", "destination file, - for stdout")

	root.AddCommand(listCmd, resetCmd, exportCmd)
	return root
}

func loadWorkouts(ctx context.Context, store domain.Store, key string) ([]domain.Workout, error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []domain.Workout{}, nil
	}
	if err != nil {
		return nil, err
	}
	workouts, _, err := domain.DecodeWorkouts(data)
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

func printList(w io.Writer, workouts []domain.Workout) error {
	if len(workouts) == 0 {
		_, err := fmt.Fprintln(w, "no workouts stored")
		return err
	}
	for i := len(workouts) - 1; i >= 0; i-- {
		entry := view.NewListEntry(workouts[i])
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", entry.WorkoutID, workouts[i].Coords, entry.Text); err != nil {
			return err
		}
	}
	return nil
}

func writeExport(w io.Writer, workouts []domain.Workout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(workouts)
}
