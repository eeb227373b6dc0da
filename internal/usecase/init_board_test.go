package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInitFixture() (*InitBoard, *testutil.MockStoreInitializer, *testutil.MockConfigManager, *board.Engine) {
	storeInit := &testutil.MockStoreInitializer{}
	configs := &testutil.MockConfigManager{}
	clock := &testutil.MockClock{NowTime: testNow}
	b := board.New(testutil.NewMockTaskStore(), &testutil.SequenceIDs{}, clock, nil)
	return NewInitBoard(storeInit, configs, b, clock), storeInit, configs, b
}

func TestInitBoard_Execute_Fresh(t *testing.T) {
	// Setup
	uc, storeInit, configs, b := newInitFixture()

	// Execute
	out, err := uc.Execute(context.Background(), InitBoardInput{Config: domain.NewDefaultConfig()})

	// Assert
	require.NoError(t, err)
	assert.False(t, out.AlreadyInitialized)
	assert.True(t, out.ConfigCreated)
	assert.Zero(t, out.Seeded)
	assert.True(t, storeInit.Initialized)
	assert.Empty(t, configs.DataConfig.Members)
	assert.Equal(t, 0, b.Len())
}

func TestInitBoard_Execute_StoreUnreachable(t *testing.T) {
	uc, storeInit, _, _ := newInitFixture()
	storeInit.CheckErr = errors.New("connection refused")

	_, err := uc.Execute(context.Background(), InitBoardInput{Config: domain.NewDefaultConfig()})

	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Zero(t, storeInit.InitCalls)
}

func TestInitBoard_Execute_Demo(t *testing.T) {
	// Setup
	uc, _, configs, b := newInitFixture()

	// Execute
	out, err := uc.Execute(context.Background(), InitBoardInput{Config: domain.NewDefaultConfig(), Demo: true})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, out.Seeded)
	assert.Len(t, configs.DataConfig.Members, 3)

	tasks := b.ListTasks(domain.TaskFilter{})
	require.Len(t, tasks, 3)
	assert.Equal(t, "Create project wireframes", tasks[0].Title)
	assert.Equal(t, "Alex Morgan", tasks[0].Assignee.Name)
	require.Len(t, tasks[0].Comments, 1)
	assert.Equal(t, "Alex Morgan", tasks[0].Comments[0].Author)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), tasks[0].Due)

	assert.Equal(t, domain.ColumnInProgress, tasks[1].Column)
	assert.Equal(t, "Morgan Chen", tasks[1].Assignee.Name)
	assert.Equal(t, domain.ColumnDone, tasks[2].Column)
	assert.Equal(t, testNow, tasks[2].Completed)
}

func TestInitBoard_Execute_Twice(t *testing.T) {
	// Setup
	uc, storeInit, _, b := newInitFixture()
	_, err := uc.Execute(context.Background(), InitBoardInput{Demo: true})
	require.NoError(t, err)

	// Execute
	out, err := uc.Execute(context.Background(), InitBoardInput{Demo: true})

	// Assert: store and config are kept, the board is not seeded again
	require.NoError(t, err)
	assert.True(t, out.AlreadyInitialized)
	assert.False(t, out.ConfigCreated)
	assert.Zero(t, out.Seeded)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2, storeInit.InitCalls)
}

func TestInitBoard_Execute_Errors(t *testing.T) {
	t.Run("store", func(t *testing.T) {
		uc, storeInit, _, _ := newInitFixture()
		storeInit.InitErr = errors.New("read-only file system")

		_, err := uc.Execute(context.Background(), InitBoardInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "initialize store")
	})

	t.Run("config", func(t *testing.T) {
		uc, _, configs, _ := newInitFixture()
		configs.InitErr = errors.New("permission denied")

		_, err := uc.Execute(context.Background(), InitBoardInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "write config")
	})
}
