package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the internal state of the store and its storage as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _ := openStore()
		defer store.Close()

		report := map[string]any{
			store.ComponentType(): store.State(),
		}
		if comp, ok := store.Storage().(introspection.Component); ok {
			if in, ok := comp.(introspection.Introspectable); ok {
				report[comp.ComponentType()] = in.State()
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			fatal("Failed to encode JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
