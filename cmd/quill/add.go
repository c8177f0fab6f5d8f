package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/form"
)

var (
	addContent string
	addFile    string
	addRaw     bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a note",
	Long: `Append a note to the collection. The content is HTML markup read from
--content, --file or stdin. It is normalized by the editor (unsupported
elements are reduced to their text) unless --raw is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		markup, err := readContent(cmd)
		if err != nil {
			fatal("Failed to read content", err)
		}

		store, cfg := openStore()
		defer store.Close()
		ctx := context.Background()

		if addRaw {
			note, err := store.Submit(ctx, markup)
			if err != nil {
				fatal("Failed to append note", err)
			}
			fmt.Println(note.ID)
			return
		}

		ed := quill.NewEditor()
		f := quill.NewForm(store, ed,
			form.WithLogger(slog.Default()),
			form.WithRequireContent(cfg.RequireContent),
		)
		if !ed.SetContent(markup) {
			fatal("Failed to parse content", fmt.Errorf("invalid markup"))
		}
		if markup != "" {
			f.OnChange(ed.HTML())
		}

		note, err := f.Submit(ctx)
		if err != nil {
			fatal("Failed to append note", err)
		}
		fmt.Println(note.ID)
	},
}

func readContent(cmd *cobra.Command) (string, error) {
	switch {
	case cmd.Flags().Changed("content"):
		return addContent, nil
	case addFile == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	case addFile != "":
		data, err := os.ReadFile(addFile)
		return string(data), err
	}

	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		return "", fmt.Errorf("no content: use --content, --file or pipe markup on stdin")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	return string(data), err
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Note markup")
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "Read markup from a file (- for stdin)")
	addCmd.Flags().BoolVar(&addRaw, "raw", false, "Store the content exactly as given")
}
