package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/yacobolo/stylegen"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 200 * time.Millisecond

// watchAndGenerate calls run once, then again after every change to the
// style document or a template, until ctx is cancelled.
//
// Parent directories are watched instead of the files themselves so that
// editors replacing a file on save keep triggering events.
func watchAndGenerate(ctx context.Context, config stylegen.Config, log logrus.FieldLogger, run func()) error {
	targets, err := watchTargets(config)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	dirs := lo.Uniq(lo.Map(lo.Keys(targets), func(path string, _ int) string { return filepath.Dir(path) }))
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	run()
	log.WithField("files", len(targets)).Info("watching for changes, press Ctrl+C to stop")

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	schedule := func() {
		if debounceTimer == nil {
			debounceTimer = time.NewTimer(watchDebounce)
			debounceCh = debounceTimer.C
		} else {
			debounceTimer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			log.Debug("watcher stopped")
			return nil

		case <-debounceCh:
			run()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if !targets[filepath.Clean(ev.Name)] {
				continue
			}
			log.WithFields(logrus.Fields{"file": ev.Name, "op": ev.Op.String()}).Debug("change detected")
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(watchErr).Error("watcher error")
		}
	}
}

// watchTargets returns the absolute paths of every input of a generation run.
func watchTargets(config stylegen.Config) (map[string]bool, error) {
	inputs := lo.Compact([]string{
		config.StylesFile,
		config.Templates.Color,
		config.Templates.Text,
		config.Templates.Changelog,
	})

	targets := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", input, err)
		}
		targets[abs] = true
	}
	return targets, nil
}
