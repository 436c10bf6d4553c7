package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
	"github.com/aretw0/shelf/internal/menu"
	"github.com/aretw0/shelf/internal/prompt"
)

// defaultRoot is used when --root is not given and no library is found above
// the working directory.
const defaultRoot = "library"

var (
	verbose      bool
	rootDir      string
	noVersioning bool
	push         bool
	configPath   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "A personal library that files documents by category and year",
	Long: `Shelf keeps your books and documents in a directory tree laid out as
<Category>/<Year>/<name> and records every change as a git commit.

Run without a subcommand to open the interactive menu.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
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
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isInteractive(os.Stdin) {
			return errors.New("the interactive menu needs a terminal; see 'shelf --help' for subcommands")
		}

		ctx := cmd.Context()
		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}

		start, err := os.UserHomeDir()
		if err != nil {
			start = "."
		}
		host := prompt.NewHost(ctx, prompt.NewPicker(start))
		return menu.New(host, lib.Service, cmd.OutOrStdout()).Run(ctx)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Library root (default: nearest library above the working directory, else ./"+defaultRoot+")")
	rootCmd.PersistentFlags().BoolVar(&noVersioning, "no-versioning", false, "Do not record changes in git")
	rootCmd.PersistentFlags().BoolVar(&push, "push", false, "Push after every commit")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
}

// resolveRoot picks the library root from --root or the working directory.
func resolveRoot() string {
	if rootDir != "" {
		return rootDir
	}
	if wd, err := os.Getwd(); err == nil {
		if found, err := shelf.FindRoot(wd); err == nil {
			return found
		}
	}
	return defaultRoot
}

// openLibrary builds the library from the global flags.
func openLibrary(ctx context.Context) (*shelf.Library, error) {
	opts := []shelf.Option{shelf.WithLogger(slog.Default())}
	if noVersioning {
		opts = append(opts, shelf.WithVersioning(false))
	}
	if push {
		opts = append(opts, shelf.WithPush(true))
	}
	if configPath != "" {
		opts = append(opts, shelf.WithConfigFile(configPath))
	}
	return shelf.New(ctx, resolveRoot(), opts...)
}

func isInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
