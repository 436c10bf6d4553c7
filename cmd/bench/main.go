// Command bench measures listing and organizing a generated library.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/shelf"
)

var extensions = []string{".pdf", ".epub", ".txt", ".docx", ".md", ".jpg"}

func main() {
	count := flag.Int("count", 1000, "Number of files to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark library after running")
	versioning := flag.Bool("git", false, "Record the organize pass in git")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "shelf_bench_")
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

	fmt.Printf("Generating %d files in %s...\n", *count, benchDir)
	startGen := time.Now()

	// Files are written directly to simulate an existing, unsorted directory.
	for i := 0; i < *count; i++ {
		name := fmt.Sprintf("file_%d%s", i, extensions[i%len(extensions)])
		path := filepath.Join(benchDir, name)
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			panic(err)
		}
		stamp := time.Date(2015+i%10, time.Month(1+i%12), 1, 12, 0, 0, 0, time.Local)
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	lib, err := shelf.New(ctx, benchDir,
		shelf.WithLogger(logger),
		shelf.WithVersioning(*versioning),
	)
	if err != nil {
		panic(err)
	}

	measure("List", func() int {
		entries, err := lib.Service.List(ctx)
		if err != nil {
			panic(err)
		}
		return len(entries)
	})

	measure("Preview", func() int {
		report, err := lib.Organizer.Preview(ctx)
		if err != nil {
			panic(err)
		}
		return report.Changes.Len()
	})

	measure("Organize (Run 1 - unsorted)", func() int {
		report, res, err := lib.Service.Organize(ctx)
		if err != nil {
			panic(err)
		}
		if res.Warning != nil {
			fmt.Printf("Warning: %v\n", res.Warning)
		}
		return report.Changes.Len()
	})

	measure("Organize (Run 2 - already sorted)", func() int {
		report, _, err := lib.Service.Organize(ctx)
		if err != nil {
			panic(err)
		}
		return report.Changes.Len()
	})
}

func measure(name string, fn func() int) {
	fmt.Printf("Running %s...\n", name)
	start := time.Now()
	n := fn()
	fmt.Printf("%s: %v (Items: %d)\n", name, time.Since(start), n)
}
