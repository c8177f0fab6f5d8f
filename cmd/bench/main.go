package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/quill"
)

// Every append rewrites the whole slot, so cost grows with the collection.
// This measures that curve per adapter.
func main() {
	count := flag.Int("count", 1000, "Number of notes to append per adapter")
	adapters := flag.String("adapters", "fs,sqlite,bolt,memory", "Comma-separated adapters to run")
	keep := flag.Bool("keep", false, "Keep the benchmark vaults after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "quill_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	content := "<p><strong>Benchmark</strong> note with <em>some</em> formatted text.</p>"

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Appending %d notes per adapter in %s\n", *count, benchDir)
	for _, name := range strings.Split(*adapters, ",") {
		store, err := quill.New(filepath.Join(benchDir, name),
			quill.WithAdapter(name),
			quill.WithAutoInit(true),
			quill.WithLogger(logger),
		)
		if err != nil {
			fmt.Printf("  %-7s failed to open: %v\n", name, err)
			continue
		}

		start := time.Now()
		var firstTenth time.Duration
		for i := 0; i < *count; i++ {
			if _, err := store.Submit(ctx, content); err != nil {
				panic(err)
			}
			if i == *count/10 {
				firstTenth = time.Since(start)
			}
		}
		total := time.Since(start)

		startLoad := time.Now()
		notes, err := store.Load(ctx)
		if err != nil {
			panic(err)
		}
		load := time.Since(startLoad)
		_ = store.Close()

		fmt.Printf("  %-7s total %v  first 10%% %v  load %v (items: %d)\n", name, total, firstTenth, load, len(notes))
	}
	fmt.Printf("--------------------------------------------------\n")
}
