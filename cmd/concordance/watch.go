package main

import (
	"context"
	"io"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hyperbolic-timechamber/concordance-go/src/config"
)

// watchFiles runs the concordance once and then again after every change
// to one of the inputs, until ctx is done. Failed runs are logged, not
// returned, so a half-written file does not end the watch.
func watchFiles(ctx context.Context, w io.Writer, c *config.Config, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "starting watcher")
	}
	defer watcher.Close()
	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			return errors.Wrapf(err, "watching %s", p)
		}
	}

	if err := run(ctx, w, c, paths); err != nil {
		log.WithError(err).Error("concordance failed")
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// Editors often replace the file; follow the new one.
				if err := watcher.Add(ev.Name); err != nil {
					log.WithError(err).WithField("file", ev.Name).Warn("input disappeared")
					continue
				}
			} else if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.WithField("file", ev.Name).Info("input changed, recounting")
			if err := run(ctx, w, c, paths); err != nil {
				log.WithError(err).Error("concordance failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		}
	}
}
