package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	quilllifecycle "github.com/aretw0/quill/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes of the note slot as they happen",
	Long:  `Watch the note slot and print one line per change made by any process. Stop with Ctrl+C.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _ := openStore(quill.WithWatcherErrorHandler(func(err error) {
			slog.Warn("watcher error", "error", err)
		}))
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		events, err := store.Watch(ctx)
		if err != nil {
			fatal("Failed to watch slot", err)
		}

		src := quilllifecycle.NewSource(store, events)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		slog.Info("watching", "slot", store.Slot())
		for e := range src.Events() {
			fmt.Fprintln(cmd.OutOrStdout(), e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
