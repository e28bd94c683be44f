package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/logger"
)

// DraftChange reports a draft write made by another process
type DraftChange struct {
	Removed bool
	Draft   *domain.CreateDraft
}

// DraftWatcher watches the draft file and reports changes this process
// did not make
type DraftWatcher struct {
	repo     *DraftRepository
	log      *logger.Logger
	debounce time.Duration
	changes  chan DraftChange
}

func NewDraftWatcher(repo *DraftRepository, log *logger.Logger) *DraftWatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &DraftWatcher{
		repo:     repo,
		log:      log.With("component", "DraftWatcher"),
		debounce: 200 * time.Millisecond,
		changes:  make(chan DraftChange, 4),
	}
}

// Changes delivers external modifications until Run returns
func (w *DraftWatcher) Changes() <-chan DraftChange {
	return w.changes
}

// Run blocks until ctx is done. The storage directory is watched rather
// than the file so atomic renames are seen.
func (w *DraftWatcher) Run(ctx context.Context) error {
	defer close(w.changes)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	path := w.repo.Path()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch draft directory: %w", err)
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			w.check(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("draft watcher error", "error", err.Error())

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		}
	}
}

func (w *DraftWatcher) check(ctx context.Context) {
	draft, err := w.repo.Load()
	if err != nil {
		w.log.Warn("failed to read changed draft", "error", err.Error())
		return
	}

	var change DraftChange
	switch {
	case draft == nil:
		if w.repo.LastWrittenRevision() == 0 {
			return
		}
		change = DraftChange{Removed: true}
	case draft.Revision == w.repo.LastWrittenRevision():
		return
	default:
		change = DraftChange{Draft: draft}
	}

	w.log.Info("draft changed by another process", "removed", change.Removed)
	select {
	case w.changes <- change:
	case <-ctx.Done():
	}
}
