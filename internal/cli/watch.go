package cli

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/modgraph/pkg/pipeline"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// fileWatcher signals when a single file is written, created or replaced.
// The parent directory is watched so that editors which save by renaming a
// temporary file are still seen.
type fileWatcher struct {
	path    string
	Changes <-chan struct{}

	changes chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan struct{}, 1)
	w := &fileWatcher{
		path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	go w.loop()
	return w, nil
}

// Stop closes the watcher and waits for its loop to exit.
func (w *fileWatcher) Stop() {
	w.watcher.Close()
	<-w.done
}

func (w *fileWatcher) loop() {
	defer close(w.done)

	var last time.Time
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				last = time.Now()
			}

		case <-ticker.C:
			if !last.IsZero() && time.Since(last) >= watchDebounce {
				last = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; the next event may still arrive.
		}
	}
}

// emit never blocks: a pending signal already covers this change.
func (w *fileWatcher) emit() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// watchRender renders once, then again after every change to the input
// file until ctx is cancelled. Each run is a full recompute; a failing run
// is reported and the watch continues.
func (c *CLI) watchRender(ctx context.Context, popts pipeline.Options, opts *renderOpts, stdout io.Writer) error {
	w, err := newFileWatcher(popts.Input)
	if err != nil {
		return err
	}
	defer w.Stop()

	run := func() {
		if err := c.runRender(ctx, popts, opts, stdout); err != nil {
			printError("%v", err)
		}
	}

	run()
	printInfo("Watching %s for changes (Ctrl+C to stop)", popts.Input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes:
			printInfo("%s changed, re-rendering", filepath.Base(popts.Input))
			run()
		}
	}
}
