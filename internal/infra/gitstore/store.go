// Package gitstore provides a Git plumbing-based implementation of KeyValueStore.
package gitstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/flowsync/internal/domain"
)

// Store implements domain.KeyValueStore using Git plumbing (refs and blobs).
// Nothing touches the working tree or the commit history.
//
// Data structure:
//
//	refs/<namespace>/
//	  initialized → blob (marker)
//	  data/
//	    <key>     → blob (value)
type Store struct {
	repo      *git.Repository
	namespace string // e.g., "flowsync"
	mu        sync.RWMutex
}

// New opens the repository at repoPath, searching parent directories for
// .git. If no repository exists, a bare one is created at repoPath.
func New(repoPath, namespace string) (*Store, error) {
	repo, err := git.PlainOpen(repoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	}
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(repoPath, true)
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, namespace), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	return &Store{
		repo:      repo,
		namespace: namespace,
	}
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// dataRef returns the ref name for a key.
func (s *Store) dataRef(key string) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "data/" + key)
}

// initializedRef returns the ref name for the initialized marker.
func (s *Store) initializedRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "initialized")
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.dataRef(key), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get data ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Put stores value under key.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Create blob
	hash, err := s.writeBlob(value)
	if err != nil {
		return err
	}

	// Update ref
	ref := plumbing.NewHashReference(s.dataRef(key), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set data ref: %w", err)
	}

	return nil
}

func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}

// Initialize writes the initialized marker if it doesn't exist.
// Returns true if the marker was created by this call.
func (s *Store) Initialize() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check if already initialized
	_, err := s.repo.Reference(s.initializedRef(), true)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, fmt.Errorf("check initialized ref: %w", err)
	}

	// Create initialized marker
	hash, err := s.writeBlob([]byte("initialized"))
	if err != nil {
		return false, err
	}
	ref := plumbing.NewHashReference(s.initializedRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return false, fmt.Errorf("set initialized ref: %w", err)
	}

	return true, nil
}

// IsInitialized checks if the store has been initialized.
func (s *Store) IsInitialized() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.repo.Reference(s.initializedRef(), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read initialized ref: %w", err)
	}
	return true, nil
}

// validateKey rejects keys that are not valid ref name components.
func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, " ~^:?*[\\") || strings.Contains(key, "..") ||
		strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") || strings.HasSuffix(key, ".lock") {
		return fmt.Errorf("invalid store key %q", key)
	}
	return nil
}

// Ensure Store implements the store ports.
var (
	_ domain.KeyValueStore    = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
