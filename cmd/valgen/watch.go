package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <description.yaml>...",
		Short: "Regenerate value types whenever a description changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args)
		},
	}
	cmd.Flags().Duration("debounce", DefaultSettings().Debounce, "delay before regenerating after a change")
	return cmd
}

// watch generates once and then again after every change to one of the
// description files, until ctx is done. Generation failures are logged and
// do not stop the watch.
func (a *app) watch(ctx context.Context, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer w.Close()

	watched, dirs := make(map[string]bool), make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// Directories are watched instead of files so that editors replacing
	// the file on save keep triggering events.
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	a.logger.Info("watching", "files", len(watched), "directories", len(dirs))
	a.regenerate(ctx, paths)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, watched) {
				continue
			}
			a.logger.Debug("description changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(a.settings.Debounce)
			} else {
				timer.Reset(a.settings.Debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("file watcher error", "err", err)
		case <-fire:
			fire = nil
			a.regenerate(ctx, paths)
		}
	}
}

func (a *app) regenerate(ctx context.Context, paths []string) {
	if err := a.generate(ctx, paths); err != nil {
		a.logger.Error("generation failed", "err", err)
	}
}

// relevant reports whether ev changes one of the watched files.
func relevant(ev fsnotify.Event, watched map[string]bool) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return watched[abs]
}
