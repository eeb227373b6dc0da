package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigCommand_ShowsEffectiveConfig(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	c.ConfigManager = &testutil.MockConfigManager{
		GlobalInfo: domain.ConfigInfo{Path: "/home/u/.config/flowsync/config.toml"},
		DataInfo:   domain.ConfigInfo{Path: "/data/config.toml", Exists: true},
	}

	// Execute
	out, _, err := runCommand(newConfigCommand(c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "- /home/u/.config/flowsync/config.toml (not found)")
	assert.Contains(t, out, "- /data/config.toml\n")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "[store]")
	assert.Contains(t, out, "Morgan Chen")
}

func TestFormatEffectiveConfig_RoundTrips(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Members = []domain.Member{{ID: "2", Name: "Morgan Chen"}}
	cfg.Warnings = []string{"hidden"}

	var buf bytes.Buffer
	require.NoError(t, formatEffectiveConfig(&buf, cfg))

	var decoded domain.Config
	require.NoError(t, toml.Unmarshal([]byte(buf.String()), &decoded))
	assert.Equal(t, cfg.Store, decoded.Store)
	assert.Equal(t, cfg.Members, decoded.Members)
	assert.Empty(t, decoded.Warnings)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestFormatEffectiveConfig_MasksEncryptionKey(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Store.EncryptionKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

	var buf bytes.Buffer
	require.NoError(t, formatEffectiveConfig(&buf, cfg))

	assert.NotContains(t, buf.String(), cfg.Store.EncryptionKey)
	assert.Contains(t, buf.String(), "********")
	assert.NotEqual(t, "********", cfg.Store.EncryptionKey, "caller's config is left untouched")
}

func TestNewConfigCommand_LoadError(t *testing.T) {
	c, _ := newTestContainer(t)
	c.ConfigLoader = &testutil.MockConfigLoader{Err: errors.New("broken toml")}

	_, _, err := runCommand(newConfigCommand(c), "show")

	assert.ErrorContains(t, err, "broken toml")
}

func TestNewConfigTemplateCommand(t *testing.T) {
	out, _, err := runCommand(newConfigTemplateCommand())

	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "store")
}

func TestNewConfigInitCommand(t *testing.T) {
	t.Run("data dir", func(t *testing.T) {
		c, _ := newTestContainer(t)
		manager := &testutil.MockConfigManager{}
		c.ConfigManager = manager

		out, _, err := runCommand(newConfigInitCommand(c))

		require.NoError(t, err)
		assert.Contains(t, out, "Created config file: config.toml")
		assert.Same(t, c.AppConfig, manager.DataConfig)
	})

	t.Run("global", func(t *testing.T) {
		c, _ := newTestContainer(t)
		manager := &testutil.MockConfigManager{}
		c.ConfigManager = manager

		out, _, err := runCommand(newConfigInitCommand(c), "--global")

		require.NoError(t, err)
		assert.Contains(t, out, "Created config file: global/config.toml")
		assert.NotNil(t, manager.GlobalConfig)
	})

	t.Run("exists", func(t *testing.T) {
		c, _ := newTestContainer(t)
		c.ConfigManager = &testutil.MockConfigManager{DataInfo: domain.ConfigInfo{Exists: true}}

		_, _, err := runCommand(newConfigInitCommand(c))

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}
