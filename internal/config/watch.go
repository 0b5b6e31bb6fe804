package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of events an editor emits on save.
const debounceWindow = 500 * time.Millisecond

// Watch starts watching the config file for changes and calls onChange with
// the freshly loaded config after each change. It returns a stop function.
//
// The parent directory is watched rather than the file itself so that
// rename-based saves (vim, atomic writes) keep working.
func Watch(path string, onChange func(*Config)) (func(), error) {
	if path == "" {
		path = DefaultPath()
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching config dir: %w", err)
	}

	var mu sync.Mutex
	var timer *time.Timer

	reload := func() {
		cfg, err := Load(absPath)
		if err != nil {
			log.Printf("reloading config: %v", err)
			return
		}
		if onChange != nil {
			onChange(cfg)
		}
	}

	go func() {
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != absPath {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceWindow, reload)
				mu.Unlock()
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher: %v", err)
			}
		}
	}()

	return func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		fw.Close()
	}, nil
}
