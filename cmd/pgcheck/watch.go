package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tracklane/pgcheck/internal/cli"
)

// watchDebounce coalesces the event bursts editors produce on save
// into a single re-run.
const watchDebounce = 200 * time.Millisecond

// runWatch runs the full suite, then re-runs it whenever the SQL test
// file or the config file changes. Every triggered run is a complete
// connect-run-close cycle against a freshly loaded config. Exits on
// interrupt with the last run's verdict.
func runWatch() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	targets := watchTargets(cfg)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories rather than the files themselves:
	// the watch survives the delete-and-rename dance editors do on save,
	// and catches the files being created later.
	for _, dir := range watchDirs(targets) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	lastSuccess := watchRun(cfg)
	printWatchStatus(targets)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if watchRelevant(event, targets) {
				pending = time.After(watchDebounce)
			}
		case <-pending:
			pending = nil
			fmt.Println()
			fmt.Println(cli.Dim(strings.Repeat("-", 60)))
			lastSuccess = watchRun(nil)
			printWatchStatus(targets)
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		case <-interrupt:
			if !lastSuccess {
				os.Exit(1)
			}
			return nil
		}
	}
}

// watchRun performs one complete run. A nil config is loaded fresh, so
// config file edits take effect on the next triggered run. Errors are
// printed but never stop the watch loop.
func watchRun(cfg *Config) bool {
	if cfg == nil {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			fmt.Fprint(os.Stderr, cli.FormatError(err))
			return false
		}
	}

	success, err := runOnce(cfg)
	if err != nil {
		if !handleClientError(err) {
			fmt.Fprint(os.Stderr, cli.FormatWarning(err.Error()))
		}
		return false
	}
	return success
}

func printWatchStatus(targets []string) {
	fmt.Println()
	fmt.Println(cli.Info(fmt.Sprintf("Watching for changes: %s (Ctrl+C to stop)", strings.Join(targets, ", "))))
}

// watchTargets returns the files whose changes trigger a re-run: the
// SQL test file and, when it exists, the config file.
func watchTargets(cfg *Config) []string {
	targets := []string{filepath.Clean(cfg.SQLFile)}
	if _, err := os.Stat(configFile); err == nil {
		targets = append(targets, filepath.Clean(configFile))
	}
	return targets
}

// watchDirs returns the parent directories of the targets, deduplicated
// in order.
func watchDirs(targets []string) []string {
	var dirs []string
	seen := make(map[string]struct{})
	for _, target := range targets {
		dir := filepath.Dir(target)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

// watchRelevant reports whether an event is a content change to one of
// the watched files. Chmod-only events are noise and never trigger.
func watchRelevant(event fsnotify.Event, targets []string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	for _, target := range targets {
		if name == target {
			return true
		}
	}
	return false
}
