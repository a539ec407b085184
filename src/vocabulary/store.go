package vocabulary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"dinner_planner/src/logger"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v2"
)

// Store serves the current vocabulary and swaps it atomically on reload.
type Store struct {
	current atomic.Pointer[Vocabulary]
	path    string
}

// NewStore returns a store holding v.
func NewStore(v *Vocabulary) *Store {
	s := &Store{}
	s.current.Store(v)
	return s
}

// LoadStore builds a store from the defaults plus the YAML overrides at path.
// An empty path yields the defaults.
func LoadStore(path string) (*Store, error) {
	s := &Store{path: path}
	s.current.Store(Default())
	if path == "" {
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the active vocabulary. Callers must not modify it.
func (s *Store) Get() *Vocabulary {
	return s.current.Load()
}

// Reload re-reads the override file.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("error reading vocabulary file: %w", err)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("error parsing vocabulary YAML: %w", err)
	}

	s.current.Store(Default().merge(&override))
	logger.Info().Str("path", s.path).Msg("Vocabulary loaded")
	return nil
}

// Watch reloads the vocabulary whenever the override file changes, until ctx ends.
// The parent directory is watched so editors that replace the file are handled.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	target := filepath.Clean(s.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("error watching vocabulary directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					if err := s.Reload(); err != nil {
						logger.Warn().Err(err).Str("path", s.path).Msg("Vocabulary reload failed, keeping previous tables")
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("Vocabulary watcher error")
			}
		}
	}()

	return nil
}
