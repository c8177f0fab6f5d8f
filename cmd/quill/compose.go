package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/compose"
	"github.com/aretw0/quill/pkg/form"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Write notes in an interactive editing session",
	Long: `Start an editing session. Plain lines are typed into the editor; lines
starting with ':' are commands such as :bold, :h2, :ul, :undo and :submit.
Type :help for the full list and :quit (or EOF) to leave.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, cfg := openStore()
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		f := quill.NewForm(store, quill.NewEditor(),
			form.WithLogger(slog.Default()),
			form.WithRequireContent(cfg.RequireContent),
		)
		session := compose.New(f, cmd.InOrStdin(), cmd.OutOrStdout(), compose.WithLogger(slog.Default()))
		if err := session.Run(ctx); err != nil && ctx.Err() == nil {
			fatal("Session failed", err)
		}
		slog.Debug("session closed", "submitted", session.Submitted())
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)
}
