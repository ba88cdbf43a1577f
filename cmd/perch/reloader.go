package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cartoon-raccoon/perch/internal/util"
)

// watchConfig watches the config file for changes and emits a reload
// request per settled burst of writes. Watching the directory as well
// covers editors that replace the file instead of writing in place.
func watchConfig(logger *util.Logger, path string) (<-chan string, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	target = filepath.Clean(target)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}
	if err := watcher.Add(target); err != nil {
		logger.Debugf("unable to watch config file directly: %v", err)
	}

	requests := make(chan string, 1)
	go func() {
		defer watcher.Close()
		const debounceWindow = 250 * time.Millisecond
		var (
			timer   *time.Timer
			timerCh <-chan time.Time
		)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounceWindow)
					timerCh = timer.C
				} else {
					if !timer.Stop() {
						<-timerCh
					}
					timer.Reset(debounceWindow)
				}
			case <-timerCh:
				timer = nil
				timerCh = nil
				select {
				case requests <- "config file updated":
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("config watcher error: %v", err)
			}
		}
	}()
	return requests, nil
}
