// Package filekv stores each key as a file under a root directory and reports
// writes from any process through fsnotify.
package filekv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
)

// DefaultRoot is used when NewStore is given an empty root.
const DefaultRoot = "./inventory-data"

const watchBuffer = 16

// Store implements kvstore.Store on the local filesystem. Values are written
// to a dot-prefixed temp file and renamed into place so readers never see a
// partial value.
type Store struct {
	root string

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

var (
	_ kvstore.Store   = (*Store)(nil)
	_ kvstore.Watcher = (*Store)(nil)
)

// NewStore returns a filesystem-backed store rooted at root, creating it if needed.
func NewStore(root string) (*Store, error) {
	if root == "" {
		root = DefaultRoot
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}
	return &Store{root: root, done: make(chan struct{})}, nil
}

// Root returns the directory holding the values.
func (s *Store) Root() string { return s.root }

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file holding key.
func (s *Store) Set(_ context.Context, key, value string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	tmp := filepath.Join(s.root, "."+key+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the file holding key.
func (s *Store) Delete(_ context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Watch reports writes to any key under the root, including writes made by
// other processes. Temp files are ignored.
func (s *Store) Watch(ctx context.Context) (<-chan kvstore.Change, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.root); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", s.root, err)
	}

	out := make(chan kvstore.Change, watchBuffer)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				key, relevant := keyForEvent(event)
				if !relevant {
					continue
				}
				select {
				case out <- kvstore.Change{Key: key}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

// Close stops every watch goroutine.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	return nil
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return kvstore.ErrClosed
	}
	return nil
}

func (s *Store) pathFor(key string) (string, error) {
	if err := kvstore.ValidateKey(key); err != nil {
		return "", err
	}
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	return filepath.Join(s.root, key), nil
}

func keyForEvent(event fsnotify.Event) (string, bool) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	return name, true
}
