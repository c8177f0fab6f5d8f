package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/core"
)

var (
	verbose bool
	adapter string
	slot    string
	dir     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A rich-text note form backed by a key-value slot",
	Long: `Quill composes formatted notes and appends them, as HTML, to a JSON
collection stored under one key of a local key-value store (files, SQLite or bbolt).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter (fs, sqlite, bolt, memory)")
	rootCmd.PersistentFlags().StringVar(&slot, "slot", "", "Storage key of the note collection (default \"myData\")")
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", "", "Vault directory (default: nearest vault above the working directory)")
}

// vaultDir returns --dir, else the nearest vault root, else the working directory.
func vaultDir() (string, error) {
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, err := platform.FindRoot(cwd)
	if errors.Is(err, platform.ErrRootNotFound) {
		return cwd, nil
	}
	return root, err
}

// vaultConfig loads quill.yaml from the vault; flags override its values.
func vaultConfig(path string) (platform.FileConfig, []quill.Option, error) {
	cfg, err := platform.LoadConfig(path)
	if err != nil {
		return cfg, nil, err
	}

	opts := append(cfg.Options(), quill.WithLogger(slog.Default()))
	if adapter != "" {
		opts = append(opts, quill.WithAdapter(adapter))
	}
	if slot != "" {
		opts = append(opts, quill.WithSlot(slot))
	}
	return cfg, opts, nil
}

// openStore opens the vault of the current invocation.
func openStore(extra ...quill.Option) (*core.NoteStore, platform.FileConfig) {
	path, err := vaultDir()
	if err != nil {
		fatal("Failed to locate vault", err)
	}
	cfg, opts, err := vaultConfig(path)
	if err != nil {
		fatal("Failed to load configuration", err)
	}

	store, err := quill.New(path, append(opts, extra...)...)
	if err != nil {
		fatal("Failed to open vault", err)
	}
	return store, cfg
}
