package shelf_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/shelf"
)

// Example_basic opens a library, adds a file and organizes it.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "shelf-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	src := filepath.Join(tmpDir, "report.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.7"), 0644); err != nil {
		log.Fatal(err)
	}
	stamp := time.Date(2023, 3, 14, 9, 0, 0, 0, time.Local)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	lib, err := shelf.New(ctx, filepath.Join(tmpDir, "library"), shelf.WithVersioning(false))
	if err != nil {
		log.Fatal(err)
	}

	if _, _, err := lib.Service.Add(ctx, src, shelf.ConflictReject); err != nil {
		log.Fatal(err)
	}
	if _, _, err := lib.Service.Organize(ctx); err != nil {
		log.Fatal(err)
	}

	entries, err := lib.Service.List(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range entries {
		fmt.Println(e.Path)
	}
	// Output:
	// Books/2023/report.pdf
}
