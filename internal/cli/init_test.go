package cli

import (
	"testing"

	"github.com/runoshun/flowsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCommand_Fresh(t *testing.T) {
	// Setup
	c, store := newTestContainer(t)
	storeInit := &testutil.MockStoreInitializer{}
	c.StoreInitializer = storeInit

	// Execute
	out, _, err := runCommand(newInitCommand(c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized flowsync in "+c.Config.DataDir)
	assert.Contains(t, out, "Created config file: config.toml")
	assert.True(t, storeInit.Initialized)
	assert.Empty(t, store.Tasks)
}

func TestNewInitCommand_Demo(t *testing.T) {
	c, store := newTestContainer(t)
	c.StoreInitializer = &testutil.MockStoreInitializer{}

	out, _, err := runCommand(newInitCommand(c), "--demo")

	require.NoError(t, err)
	assert.Contains(t, out, "Added 3 demo tasks")
	assert.Len(t, store.Tasks, 3)
}

func TestNewInitCommand_AlreadyInitialized(t *testing.T) {
	c, _ := newTestContainer(t)
	manager := &testutil.MockConfigManager{}
	c.ConfigManager = manager
	_, _, err := runCommand(newInitCommand(c))
	require.NoError(t, err)

	out, _, err := runCommand(newInitCommand(c))

	require.NoError(t, err)
	assert.Contains(t, out, "flowsync already initialized")
	assert.NotContains(t, out, "Created config file")
}
