package catalog

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/xtding233/loot-economy/internal/reward"
)

// SeedWatcher reloads the master list whenever the seed file changes and
// hands the parsed result to onChange. Invalid files are logged and skipped.
type SeedWatcher struct {
	path     string
	onChange func([]reward.Definition)
	logger   *zap.Logger
	w        *fsnotify.Watcher
	done     chan struct{}
}

// NewSeedWatcher creates a watcher for the seed file at path.
func NewSeedWatcher(path string, logger *zap.Logger, onChange func([]reward.Definition)) *SeedWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedWatcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins watching in a goroutine. The parent directory is watched so
// editors that replace the file by rename are still seen.
func (s *SeedWatcher) Start() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}
	s.w = w
	go s.loop()
	return nil
}

// Stop terminates the watcher and waits for its goroutine.
func (s *SeedWatcher) Stop() {
	if s.w == nil {
		return
	}
	s.w.Close()
	<-s.done
}

func (s *SeedWatcher) loop() {
	defer close(s.done)
	for {
		select {
		case ev, ok := <-s.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			defs, err := LoadSeed(s.path)
			if err != nil {
				s.logger.Warn("seed reload failed", zap.String("path", s.path), zap.Error(err))
				continue
			}
			s.logger.Info("seed reloaded", zap.String("path", s.path), zap.Int("rewards", len(defs)))
			if s.onChange != nil {
				s.onChange(defs)
			}
		case err, ok := <-s.w.Errors:
			if !ok {
				return
			}
			s.logger.Warn("seed watcher error", zap.Error(err))
		}
	}
}
