package gitstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	// Create an initial commit so HEAD exists
	wt, err := repo.Worktree()
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test"), 0o644)
	require.NoError(t, err)

	_, err = wt.Add("README.md")
	require.NoError(t, err)

	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return repo, dir
}

func TestStore_Initialize(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "flowsync-test")

	initialized, err := store.IsInitialized()
	require.NoError(t, err)
	assert.False(t, initialized)

	created, err := store.Initialize()
	require.NoError(t, err)
	assert.True(t, created)
	initialized, err = store.IsInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)

	// Second call should be idempotent
	created, err = store.Initialize()
	require.NoError(t, err)
	assert.False(t, created)
}

func TestStore_PutAndGet(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "flowsync-test")
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "flowsync-tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte("schemaVersion: 1\ntasks: []\n")
	require.NoError(t, store.Put(ctx, "flowsync-tasks", value))

	got, ok, err := store.Get(ctx, "flowsync-tasks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, value, got)

	// Ref points at a blob under the namespace
	ref, err := repo.Reference(plumbing.ReferenceName("refs/flowsync-test/data/flowsync-tasks"), true)
	require.NoError(t, err)
	assert.False(t, ref.Hash().IsZero())
}

func TestStore_LargeValue(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "flowsync-test")
	ctx := context.Background()

	value := make([]byte, 256*1024)
	for i := range value {
		value[i] = byte('a' + i%26)
	}
	require.NoError(t, store.Put(ctx, "big", value))

	got, ok, err := store.Get(ctx, "big")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, value, got)
}

func TestStore_Overwrite(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "flowsync-test")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("one")))
	require.NoError(t, store.Put(ctx, "k", []byte("two")))

	got, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	repo, _ := setupTestRepo(t)
	a := NewWithRepo(repo, "ns-a")
	b := NewWithRepo(repo, "ns-b")
	ctx := context.Background()

	require.NoError(t, a.Put(ctx, "k", []byte("a")))

	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_InvalidKey(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "flowsync-test")
	ctx := context.Background()

	for _, key := range []string{"", "a b", "a..b", "x.lock", "/lead", "tail/", "q?"} {
		assert.Error(t, store.Put(ctx, key, []byte("v")), "key %q", key)
		_, _, err := store.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestNew_OpensFromSubdirectory(t *testing.T) {
	_, dir := setupTestRepo(t)
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	store, err := New(sub, "flowsync-test")
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "k", []byte("v")))

	// Visible through a store opened at the repository root
	root, err := New(dir, "flowsync-test")
	require.NoError(t, err)
	got, ok, err := root.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(got))
}

func TestNew_CreatesBareRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store.git")

	store, err := New(dir, "")
	require.NoError(t, err)

	created, err := store.Initialize()
	require.NoError(t, err)
	assert.True(t, created)

	_, err = os.Stat(filepath.Join(dir, "HEAD"))
	assert.NoError(t, err)

	// Reopening finds the bare repository
	reopened, err := New(dir, "")
	require.NoError(t, err)
	initialized, err := reopened.IsInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)
}
