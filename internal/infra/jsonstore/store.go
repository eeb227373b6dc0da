// Package jsonstore provides a JSON file-based implementation of KeyValueStore.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/flowsync/internal/domain"
)

// storeData represents the JSON file structure.
// Values are embedded as-is so the file stays readable.
type storeData struct {
	Entries map[string]json.RawMessage `json:"entries"`
}

// Store implements domain.KeyValueStore using a single JSON file.
// Concurrent processes are serialized with flock on a sibling lock file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file must be created with Initialize before use.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		ok    bool
	)
	err := s.withLock(func(data *storeData) error {
		raw, found := data.Entries[key]
		if found {
			value, ok = append([]byte(nil), raw...), true
		}
		return nil
	})
	return value, ok, err
}

// Put stores value under key. value must be valid JSON.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	return s.withLockWrite(func(data *storeData) error {
		data.Entries[key] = append(json.RawMessage(nil), value...)
		return nil
	})
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat store file: %w", err)
	}
	return true, nil
}

// Initialize creates an empty store file if it doesn't exist.
// Returns true if the file was created by this call.
func (s *Store) Initialize() (bool, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}

	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return false, err
	}
	defer s.releaseLock(lock)

	if _, err := os.Stat(s.path); err == nil {
		return false, nil // Already exists
	}

	return true, s.write(&storeData{Entries: make(map[string]json.RawMessage)})
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	if data.Entries == nil {
		data.Entries = make(map[string]json.RawMessage)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements the store ports.
var (
	_ domain.KeyValueStore    = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
