package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"downsize/internal/config"
	"downsize/internal/resizer"
	"downsize/internal/tui"
)

var (
	maxWidth  int
	maxHeight int
	quality   int
	plain     bool
)

func addSizeFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().IntVarP(&maxWidth, "max-width", "W", defaults.MaxWidth, "maximum width in pixels")
	cmd.Flags().IntVarP(&maxHeight, "max-height", "H", defaults.MaxHeight, "maximum height in pixels")
	cmd.Flags().IntVarP(&quality, "quality", "q", defaults.Quality, "JPEG quality (1-100); PNG and BMP ignore it")
	cmd.Flags().BoolVar(&plain, "plain", false, "print one status line per file instead of the progress view")
}

// resolveOptions layers explicit flags over the config file over defaults.
func resolveOptions(cmd *cobra.Command, dryRun bool, logger zerolog.Logger) (resizer.Options, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return resizer.Options{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("max-width") {
		cfg.MaxWidth = maxWidth
	}
	if flags.Changed("max-height") {
		cfg.MaxHeight = maxHeight
	}
	if flags.Changed("quality") {
		cfg.Quality = quality
	}

	opts := resizer.DefaultOptions()
	opts.MaxWidth = cfg.MaxWidth
	opts.MaxHeight = cfg.MaxHeight
	opts.Quality = cfg.Quality
	opts.DryRun = dryRun
	opts.Logger = logger
	return opts, opts.Validate()
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().
		Logger()
}

func runResize(cmd *cobra.Command, dir string, dryRun bool) error {
	logger := newLogger(cmd.ErrOrStderr(), debug)

	opts, err := resolveOptions(cmd, dryRun, logger)
	if err != nil {
		return err
	}
	if err := resizer.CheckDir(dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	updates := make(chan resizer.ProgressUpdate, 64)
	uiDone := make(chan struct{})

	if plain || debug || !isTerminal(out) {
		go func() {
			defer close(uiDone)
			printLines(out, updates)
		}()
	} else {
		title := "downsize"
		if dryRun {
			title = "downsize (check)"
		}
		program := tea.NewProgram(tui.NewModel(title, updates), tea.WithOutput(out), tea.WithInput(nil))
		go func() {
			defer close(uiDone)
			if _, err := program.Run(); err != nil {
				logger.Debug().Str("errmsg", err.Error()).Msg("progress view stopped")
			}
			printLines(out, updates)
		}()
	}

	started := time.Now()
	summary, _, runErr := resizer.Run(ctx, dir, opts, updates)
	close(updates)
	<-uiDone

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	fmt.Fprintln(out, tui.RenderSummary(tui.SummaryRows(summary, dryRun)))
	if runErr != nil {
		return fmt.Errorf("interrupted: %w", runErr)
	}

	absDir := dir
	if abs, absErr := filepath.Abs(dir); absErr == nil {
		absDir = abs
	}
	logger.Debug().Str("dir", absDir).Str("dur", time.Since(started).String()).Msg("completed")
	return nil
}

// printLines writes the plain status line of every result still in updates.
func printLines(w io.Writer, updates <-chan resizer.ProgressUpdate) {
	for update := range updates {
		if update.Result != nil {
			fmt.Fprintln(w, update.Result.Line())
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
