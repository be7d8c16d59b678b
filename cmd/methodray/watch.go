package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay gives editors time to finish writing before the re-check.
const debounceDelay = 100 * time.Millisecond

// watch re-runs the check every time the file is modified. Editors that
// replace files on save (rename+create) drop the watch on some platforms, so
// the path is re-added after every event burst.
func (a *app) watch(ctx context.Context, file string) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("file not found: %s", file)
	}

	fmt.Printf("Watching %s for changes (Press Ctrl+C to stop)\n\n", file)

	fmt.Println("Initial check:")
	hadErrors := false
	if ok, err := a.check(ctx, file, true); err != nil {
		a.logger.Printf("initial check: %v", err)
		hadErrors = true
	} else {
		hadErrors = !ok
	}
	fmt.Println()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(file); err != nil {
		return fmt.Errorf("watching %s: %w", file, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			time.Sleep(debounceDelay)
			_ = watcher.Add(file)

			fmt.Println("\n--- File changed, re-checking... ---")
			ok, err := a.check(ctx, file, true)
			switch {
			case err != nil:
				a.logger.Printf("check: %v", err)
				hadErrors = true
			case ok && hadErrors:
				fmt.Println("All errors fixed!")
				hadErrors = false
			case !ok:
				hadErrors = true
			}
			fmt.Println()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Printf("watch: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
