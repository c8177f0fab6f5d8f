package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/quill/pkg/editor"
)

var (
	listJSON bool
	listYAML bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _ := openStore()
		defer store.Close()

		notes, err := store.Load(context.Background())
		if err != nil {
			fatal("Failed to load notes", err)
		}

		switch {
		case listJSON:
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode JSON", err)
			}
		case listYAML:
			encoder := yaml.NewEncoder(os.Stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode YAML", err)
			}
			_ = encoder.Close()
		default:
			for _, n := range notes {
				fmt.Printf("%s  %s\n", n.ID, preview(n.Content, 60))
			}
		}
	},
}

// preview renders the first line of a note as plain text.
func preview(markup string, width int) string {
	text := editor.New(editor.WithContent(markup)).Text()
	line, _, _ := strings.Cut(text, "\n")
	if r := []rune(line); len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return line
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
