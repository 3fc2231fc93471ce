package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNoFiles is returned by Run when there is nothing to watch.
var ErrNoFiles = errors.New("no files to watch")

// RunFunc is called each time the watcher triggers a filter run.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult summarises a single filter run for the status line.
type RunResult struct {
	MainPages    int
	Sections     int
	RemovedPages int
	OutputPath   string
}

// Options configures the watch behaviour.
type Options struct {
	// Files are the files whose changes trigger a run, typically the
	// manifest and the rules file.
	Files []string

	// Debounce is the quiet period before triggering a run.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 300 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run starts the file watcher and blocks until the context is cancelled
// or a SIGINT/SIGTERM signal is received.
//
// Parent directories are watched instead of the files themselves so that
// editors replacing a file by rename keep triggering runs.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	targets, err := resolveTargets(opts.Files)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := addParents(watcher, targets); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n",
		strings.Join(opts.Files, ", "), opts.Debounce)

	doRun(sigCtx, opts, runFn, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func(paths []string) {
		doRun(sigCtx, opts, runFn, strings.Join(paths, ", "))
	})
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			_, _ = fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event) || !targets[filepath.Clean(event.Name)] {
				continue
			}

			opts.Logger.Debug("change detected",
				slog.String("file", event.Name),
				slog.String("op", event.Op.String()))

			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single filter run and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	_, _ = fmt.Fprintf(opts.Out, "[%s] %s → OK (%d main pages, %d subpackages, %d pages removed)\n",
		now, trigger, result.MainPages, result.Sections, result.RemovedPages)

	if result.OutputPath != "" {
		_, _ = fmt.Fprintf(opts.Out, "  wrote %s\n", result.OutputPath)
	}
}

// resolveTargets returns the cleaned absolute paths of files.
func resolveTargets(files []string) (map[string]bool, error) {
	targets := make(map[string]bool, len(files))

	for _, f := range files {
		if f == "" {
			continue
		}

		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", f, err)
		}

		targets[abs] = true
	}

	if len(targets) == 0 {
		return nil, ErrNoFiles
	}

	return targets, nil
}

// addParents adds the directory of every target to the watcher once.
func addParents(watcher *fsnotify.Watcher, targets map[string]bool) error {
	added := make(map[string]bool)

	for t := range targets {
		if _, err := os.Stat(t); err != nil {
			return fmt.Errorf("watching file %q: %w", t, err)
		}

		dir := filepath.Dir(t)
		if added[dir] {
			continue
		}

		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %q: %w", dir, err)
		}

		added[dir] = true
	}

	return nil
}

// isRelevant filters out chmod-only events and editor scratch files.
func isRelevant(event fsnotify.Event) bool {
	if event.Op == 0 {
		return false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)

	if strings.HasPrefix(name, ".#") || strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") || strings.HasPrefix(name, "#") {
		return false
	}

	return true
}
