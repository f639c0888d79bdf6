package pdfship

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/pdfship/internal/adapters/fs"
	"github.com/bft-labs/pdfship/internal/ports"
)

// DefaultDebounce is the quiet period Watch waits for after the last change.
const DefaultDebounce = 2 * time.Second

// Watch performs one run, then runs again each time a PDF in the source
// directory is created, written or renamed and the directory has been quiet
// for debounce. Runs never overlap and each opens its own connection. A
// failed run is logged and watching continues. Watch returns nil once ctx
// is cancelled.
func (s *Shipper) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.config.SourceDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.config.SourceDir, err)
	}
	s.logger.Info("watching source folder",
		ports.String("source", s.config.SourceDir),
		ports.Duration("debounce", debounce),
	)

	s.runLogged(ctx)

	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !fs.IsPDF(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug("source changed",
				ports.String("file", filepath.Base(event.Name)),
				ports.String("op", event.Op.String()),
			)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", ports.Err(err))

		case <-trigger:
			s.runLogged(ctx)
		}
	}
}

func (s *Shipper) runLogged(ctx context.Context) {
	if _, err := s.Run(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("sync run failed", ports.Err(err))
	}
}
