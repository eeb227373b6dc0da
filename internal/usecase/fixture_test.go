package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/notify"
	"github.com/runoshun/flowsync/internal/project"
	"github.com/runoshun/flowsync/internal/testutil"
	"github.com/stretchr/testify/require"
)

var (
	testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	alex    = domain.Member{ID: "1", Name: "Alex Morgan"}
	morgan  = domain.Member{ID: "2", Name: "Morgan Chen"}
)

// fixture wires a real engine, dispatcher and project registry over
// in-memory stores. Alex is the acting user. All IDs come from one shared
// sequence.
type fixture struct {
	board    *board.Engine
	notifier *notify.Dispatcher
	projects *project.Registry
	tasks    *testutil.MockTaskStore
	notes    *testutil.MockNotificationStore
	projs    *testutil.MockProjectStore
	clock    *testutil.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tasks: testutil.NewMockTaskStore(),
		notes: &testutil.MockNotificationStore{},
		projs: &testutil.MockProjectStore{},
		clock: &testutil.MockClock{NowTime: testNow},
	}
	ids := &testutil.SequenceIDs{}
	f.board = board.New(f.tasks, ids, f.clock, nil).WithMembers(domain.Directory{alex, morgan})
	f.notifier = notify.New(f.notes, ids, f.clock, nil)
	f.projects = project.New(f.projs, ids, f.clock, nil).WithMembers(domain.Directory{alex, morgan})
	require.NoError(t, f.board.Load(context.Background()))
	require.NoError(t, f.notifier.Load(context.Background()))
	require.NoError(t, f.projects.Load(context.Background()))
	return f
}

// createTask adds a task through the use case and returns it.
func (f *fixture) createTask(t *testing.T, title, assigneeID string) *domain.Task {
	t.Helper()
	out, err := NewNewTask(f.board, f.notifier, f.clock, alex.ID).Execute(context.Background(), NewTaskInput{
		Title:      title,
		AssigneeID: assigneeID,
	})
	require.NoError(t, err)
	return out.Task
}

// createProject registers a project and returns it.
func (f *fixture) createProject(t *testing.T, name string) *domain.Project {
	t.Helper()
	out, err := NewCreateProject(f.projects).Execute(context.Background(), CreateProjectInput{Name: name})
	require.NoError(t, err)
	return out.Project
}
