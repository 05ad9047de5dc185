package spool

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gmseer/interfaces"
	"gmseer/model"
)

// Follower keeps a DirSource open: once the directory is drained it blocks until the
// decoder writes a new batch file or the poll interval elapses. It reports io.EOF
// when ctx ends, so the core stops cleanly.
type Follower struct {
	source *DirSource
	poll   time.Duration
	wake   chan struct{}
}

var _ interfaces.BatchSource = (*Follower)(nil)

func NewFollower(source *DirSource, poll time.Duration) *Follower {
	if poll <= 0 {
		poll = 30 * time.Second
	}
	return &Follower{source: source, poll: poll, wake: make(chan struct{}, 1)}
}

// Watch forwards matching file events of the spool directory until ctx ends.
func (f *Follower) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func(watcher *fsnotify.Watcher) {
		if err := watcher.Close(); err != nil {
			slog.Error("error closing spool watcher", "error", err)
		}
	}(watcher)

	if err := watcher.Add(f.source.dir); err != nil {
		return err
	}
	slog.Info("watching spool directory", "dir", f.source.dir, "pattern", f.source.pattern)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("spool watcher closed")
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if match, _ := filepath.Match(f.source.pattern, filepath.Base(event.Name)); !match {
				continue
			}
			slog.Debug("new batch file detected", "name", event.Name, "op", event.Op.String())
			f.notify()
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("spool watcher closed")
			}
			slog.Error("spool watcher error", "error", err)
		}
	}
}

func (f *Follower) notify() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *Follower) Next(ctx context.Context) (*model.Batch, error) {
	ticker := time.NewTicker(f.poll)
	defer ticker.Stop()
	for {
		batch, err := f.source.Next(ctx)
		if !errors.Is(err, io.EOF) {
			if errors.Is(err, context.Canceled) {
				return nil, io.EOF
			}
			return batch, err
		}
		select {
		case <-ctx.Done():
			return nil, io.EOF
		case <-f.wake:
		case <-ticker.C:
		}
	}
}

func (f *Follower) Done(batch *model.Batch) error {
	return f.source.Done(batch)
}
