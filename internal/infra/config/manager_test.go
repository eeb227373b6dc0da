package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetDataConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		dataDir := t.TempDir()
		configContent := "[store]\nbackend = \"git\""
		err := os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte(configContent), 0o644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir(dataDir, "")
		info := manager.GetDataConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		dataDir := t.TempDir()

		manager := NewManagerWithGlobalDir(dataDir, "")
		info := manager.GetDataConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(configContent), 0o644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir("", globalDir)
		info := manager.GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns empty info without global dir", func(t *testing.T) {
		manager := NewManagerWithGlobalDir(t.TempDir(), "")
		info := manager.GetGlobalConfigInfo()

		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})
}

func TestManager_InitDataConfig(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "flowsync")
		manager := NewManagerWithGlobalDir(dataDir, "")

		err := manager.InitDataConfig(domain.NewDefaultConfig())
		require.NoError(t, err)

		info := manager.GetDataConfigInfo()
		assert.True(t, info.Exists)
		assert.Contains(t, info.Content, "[store]")
		assert.Contains(t, info.Content, `backend = "json"`)
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		dataDir := t.TempDir()
		err := os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte("existing"), 0o644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir(dataDir, "")
		err = manager.InitDataConfig(domain.NewDefaultConfig())

		assert.ErrorIs(t, err, domain.ErrConfigExists)
		content, _ := os.ReadFile(filepath.Join(dataDir, domain.ConfigFileName))
		assert.Equal(t, "existing", string(content))
	})
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates config file and directory", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "nested", "flowsync")
		manager := NewManagerWithGlobalDir("", globalDir)

		err := manager.InitGlobalConfig(domain.NewDefaultConfig())
		require.NoError(t, err)

		info := manager.GetGlobalConfigInfo()
		assert.True(t, info.Exists)
		assert.Contains(t, info.Content, "[dashboard]")
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte("existing"), 0o644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir("", globalDir)
		err = manager.InitGlobalConfig(domain.NewDefaultConfig())

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("returns error without global dir", func(t *testing.T) {
		manager := NewManagerWithGlobalDir(t.TempDir(), "")

		err := manager.InitGlobalConfig(domain.NewDefaultConfig())

		assert.Error(t, err)
	})
}
