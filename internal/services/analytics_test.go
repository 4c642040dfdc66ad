package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/services"
	"github.com/sprintboard-dev/sprintboard/internal/types"
)

func TestDashboardOverview(t *testing.T) {
	gdb := setupTestDB(t)
	manager := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	project := createProject(t, gdb, "Teams in Space", manager)

	for _, status := range []string{types.StatusDone, types.StatusDone, types.StatusTodo, types.StatusInProgress} {
		createTask(t, gdb, project, manager, services.CreateTaskInput{
			Title:        "Task " + status,
			Status:       status,
			AssignedToID: &manager.ID,
		})
	}

	metrics, err := services.Dashboard(gdb, manager.ID, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 4, metrics.Overview.TotalTasks)
	assert.EqualValues(t, 2, metrics.Overview.CompletedTasks)
	assert.EqualValues(t, 1, metrics.Overview.InProgressTasks)
	assert.EqualValues(t, 1, metrics.Overview.TodoTasks)
	assert.Equal(t, 50.0, metrics.Overview.CompletionRate)

	assert.EqualValues(t, 4, metrics.UserMetrics.AssignedTasks)
	assert.EqualValues(t, 2, metrics.UserMetrics.CompletedTasks)
	assert.EqualValues(t, 1, metrics.UserMetrics.InProgressTasks)
}

func TestDashboardProductivityScore(t *testing.T) {
	gdb := setupTestDB(t)
	manager := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	project := createProject(t, gdb, "Teams in Space", manager)

	createTask(t, gdb, project, manager, services.CreateTaskInput{
		Title:  "Done task",
		Status: types.StatusDone,
	})
	createTask(t, gdb, project, manager, services.CreateTaskInput{
		Title:  "Open task",
		Status: types.StatusTodo,
	})

	for i := 0; i < 3; i++ {
		_, err := services.RecordBehavior(gdb, manager.ID, "page_view", nil, nil, nil)
		require.NoError(t, err)
	}

	metrics, err := services.Dashboard(gdb, manager.ID, nil)
	require.NoError(t, err)

	// completion rate 50 + 3 recent actions * 2 = 56
	assert.Equal(t, 56.0, metrics.UserMetrics.ProductivityScore)
	assert.EqualValues(t, 3, metrics.RecentActivity.UserActionsThisWeek)
	assert.EqualValues(t, 3, metrics.RecentActivity.TotalUserActions)
	assert.EqualValues(t, 1, metrics.RecentActivity.TasksCompletedThisWeek)
}

func TestDashboardProductivityScoreIsCapped(t *testing.T) {
	gdb := setupTestDB(t)
	manager := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	project := createProject(t, gdb, "Teams in Space", manager)

	createTask(t, gdb, project, manager, services.CreateTaskInput{
		Title:  "Done task",
		Status: types.StatusDone,
	})

	for i := 0; i < 40; i++ {
		_, err := services.RecordBehavior(gdb, manager.ID, "page_view", nil, nil, nil)
		require.NoError(t, err)
	}

	metrics, err := services.Dashboard(gdb, manager.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 100.0, metrics.UserMetrics.ProductivityScore)
}

func TestDashboardEmptyIsAllZeros(t *testing.T) {
	gdb := setupTestDB(t)
	manager := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)

	metrics, err := services.Dashboard(gdb, manager.ID, nil)
	require.NoError(t, err)

	assert.Zero(t, metrics.Overview.TotalTasks)
	assert.Equal(t, 0.0, metrics.Overview.CompletionRate)
	assert.Equal(t, 0.0, metrics.UserMetrics.ProductivityScore)
	assert.Empty(t, metrics.Distributions.Priority)
	assert.Empty(t, metrics.Distributions.Status)
}

func TestDashboardProjectFilter(t *testing.T) {
	gdb := setupTestDB(t)
	manager := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	space := createProject(t, gdb, "Teams in Space", manager)
	mars := createProject(t, gdb, "Mars Office", manager)

	createTask(t, gdb, space, manager, services.CreateTaskInput{Title: "Space task", Status: types.StatusDone})
	createTask(t, gdb, mars, manager, services.CreateTaskInput{Title: "Mars task one"})
	createTask(t, gdb, mars, manager, services.CreateTaskInput{Title: "Mars task two"})

	metrics, err := services.Dashboard(gdb, manager.ID, &mars.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, metrics.Overview.TotalTasks)
	assert.EqualValues(t, 0, metrics.Overview.CompletedTasks)
}

func TestDashboardDistributions(t *testing.T) {
	gdb := setupTestDB(t)
	manager := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	project := createProject(t, gdb, "Teams in Space", manager)

	createTask(t, gdb, project, manager, services.CreateTaskInput{Title: "A", Priority: types.PriorityHigh})
	createTask(t, gdb, project, manager, services.CreateTaskInput{Title: "B", Priority: types.PriorityHigh})
	createTask(t, gdb, project, manager, services.CreateTaskInput{Title: "C", Priority: types.PriorityLow, Status: types.StatusDone})

	metrics, err := services.Dashboard(gdb, manager.ID, nil)
	require.NoError(t, err)

	priorities := map[string]int64{}
	for _, g := range metrics.Distributions.Priority {
		priorities[g.Priority] = g.Count
	}
	assert.EqualValues(t, 2, priorities[types.PriorityHigh])
	assert.EqualValues(t, 1, priorities[types.PriorityLow])

	statuses := map[string]int64{}
	for _, g := range metrics.Distributions.Status {
		statuses[g.Status] = g.Count
	}
	assert.EqualValues(t, 2, statuses[types.StatusTodo])
	assert.EqualValues(t, 1, statuses[types.StatusDone])
}

func TestRecordBehaviorValidation(t *testing.T) {
	gdb := setupTestDB(t)
	user := createUser(t, gdb, "employee1", types.RoleMember)

	_, err := services.RecordBehavior(gdb, user.ID, "   ", nil, nil, nil)
	assert.ErrorIs(t, err, services.ErrValidation)

	missing := uint(9999)
	_, err = services.RecordBehavior(gdb, user.ID, "task_view", &missing, nil, nil)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestRecordBehaviorStoresMetadata(t *testing.T) {
	gdb := setupTestDB(t)
	manager := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	project := createProject(t, gdb, "Teams in Space", manager)
	task := createTask(t, gdb, project, manager, services.CreateTaskInput{Title: "Draft network plan"})

	duration := uint(120)
	behavior, err := services.RecordBehavior(gdb, manager.ID, "task_view", &task.ID, &duration, map[string]interface{}{
		"source": "kanban",
	})
	require.NoError(t, err)

	var stored models.UserBehavior
	require.NoError(t, gdb.First(&stored, behavior.ID).Error)

	assert.Equal(t, "task_view", stored.ActionType)
	require.NotNil(t, stored.DurationSeconds)
	assert.EqualValues(t, 120, *stored.DurationSeconds)
	assert.Contains(t, string(stored.Metadata), "kanban")
}
