package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill/pkg/editor"
)

var (
	showJSON bool
	showText bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note",
	Long:  `Print a note by its ID. Outputs the stored markup by default, plain text with --text or the record with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, _ := openStore()
		defer store.Close()

		note, err := store.Get(context.Background(), args[0])
		if err != nil {
			fatal("Failed to read note", err)
		}

		switch {
		case showJSON:
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fatal("Failed to encode JSON", err)
			}
		case showText:
			fmt.Println(editor.New(editor.WithContent(note.Content)).Text())
		default:
			fmt.Println(note.Content)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the note record as JSON")
	showCmd.Flags().BoolVar(&showText, "text", false, "Output plain text")
	showCmd.MarkFlagsMutuallyExclusive("json", "text")
}
