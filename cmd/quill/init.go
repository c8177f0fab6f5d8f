package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/platform"
)

var initRequireContent bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a quill vault",
	Long: `Initialize a vault in the given directory (default: current directory).
Writes quill.yaml with the chosen adapter and slot and prepares the storage.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := dir
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			path = cwd
		}

		cfg, err := platform.LoadConfig(path)
		if err != nil {
			fatal("Failed to load configuration", err)
		}
		if adapter != "" {
			cfg.Adapter = adapter
		}
		if cfg.Adapter == "" {
			cfg.Adapter = platform.AdapterFS
		}
		if slot != "" {
			cfg.Slot = slot
		}
		if cfg.Slot == "" {
			cfg.Slot = quill.DefaultSlot
		}
		if cmd.Flags().Changed("require-content") {
			cfg.RequireContent = initRequireContent
		}

		store, err := quill.New(path, append(cfg.Options(), quill.WithAutoInit(true))...)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}
		defer store.Close()

		resolved := quill.ResolveVaultPath(path, quill.IsDevRun())
		if err := os.MkdirAll(resolved, 0755); err != nil {
			fatal("Failed to create vault directory", err)
		}
		if err := platform.SaveConfig(resolved, cfg); err != nil {
			fatal("Failed to write configuration", err)
		}

		abs, _ := filepath.Abs(resolved)
		fmt.Printf("Initialized %s vault in %s (slot %q)\n", cfg.Adapter, abs, cfg.Slot)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initRequireContent, "require-content", false, "Reject blank submissions")
}
