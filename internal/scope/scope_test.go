package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sprintboard-dev/sprintboard/db"
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/scope"
	"github.com/sprintboard-dev/sprintboard/internal/types"
)

type fixture struct {
	gdb     *gorm.DB
	manager models.User
	alice   models.User
	bob     models.User

	// owned is created by manager with alice as member; foreign is created by
	// bob with manager as member but not creator.
	owned   models.Project
	foreign models.Project

	ownedTask   models.Task
	foreignTask models.Task
}

func setup(t *testing.T) fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	f := fixture{gdb: gdb}
	f.manager = makeUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	f.alice = makeUser(t, gdb, "employee1", types.RoleMember)
	f.bob = makeUser(t, gdb, "manager2", types.RoleOwnerManager)

	f.owned = makeProject(t, gdb, "Teams in Space", f.manager.ID, f.alice.ID)
	f.foreign = makeProject(t, gdb, "Mars Office", f.bob.ID, f.manager.ID)

	f.ownedTask = makeTask(t, gdb, f.owned, f.manager.ID, "TEA-1", "Engage Jupiter Express")
	f.foreignTask = makeTask(t, gdb, f.foreign, f.bob.ID, "MAR-1", "Create 90 day plans")

	return f
}

func makeUser(t *testing.T, gdb *gorm.DB, username, role string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, gdb.Create(&user).Error)

	return user
}

func makeProject(t *testing.T, gdb *gorm.DB, name string, creatorID uint, memberIDs ...uint) models.Project {
	t.Helper()

	project := models.Project{Name: name, CreatedByID: creatorID, IsActive: true}
	require.NoError(t, gdb.Create(&project).Error)

	for _, id := range memberIDs {
		membership := models.ProjectMembership{UserID: id, ProjectID: project.ID}
		require.NoError(t, gdb.Create(&membership).Error)
	}

	return project
}

func makeTask(t *testing.T, gdb *gorm.DB, project models.Project, creatorID uint, key, title string) models.Task {
	t.Helper()

	task := models.Task{
		Title:       title,
		TaskKey:     key,
		ProjectID:   project.ID,
		CreatedByID: creatorID,
		Status:      types.StatusTodo,
		Priority:    types.PriorityMedium,
	}
	require.NoError(t, gdb.Create(&task).Error)

	return task
}

func TestMemberSeesOnlyMembershipProjects(t *testing.T) {
	f := setup(t)

	var projects []models.Project
	require.NoError(t, scope.Projects(f.gdb, f.alice.ID, types.RoleMember).Find(&projects).Error)

	require.Len(t, projects, 1)
	assert.Equal(t, f.owned.ID, projects[0].ID)
}

func TestManagerSeesCreatedAndMembershipProjects(t *testing.T) {
	f := setup(t)

	var projects []models.Project
	require.NoError(t, scope.Projects(f.gdb, f.manager.ID, types.RoleOwnerManager).Find(&projects).Error)

	ids := map[uint]bool{}
	for _, p := range projects {
		ids[p.ID] = true
	}

	require.Len(t, projects, 2)
	assert.True(t, ids[f.owned.ID])
	assert.True(t, ids[f.foreign.ID])
}

func TestManagerTasksCoverOnlyCreatedProjects(t *testing.T) {
	f := setup(t)

	// The manager belongs to the foreign project but did not create it, so
	// its tasks stay out of the manager's task scope even though the project
	// itself is visible.
	var tasks []models.Task
	require.NoError(t, scope.Tasks(f.gdb, f.manager.ID, types.RoleOwnerManager).Find(&tasks).Error)

	require.Len(t, tasks, 1)
	assert.Equal(t, f.ownedTask.ID, tasks[0].ID)

	_, err := scope.FindTask(f.gdb, f.foreignTask.ID, f.manager.ID, types.RoleOwnerManager)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemberTasksFollowMembership(t *testing.T) {
	f := setup(t)

	var tasks []models.Task
	require.NoError(t, scope.Tasks(f.gdb, f.alice.ID, types.RoleMember).Find(&tasks).Error)

	require.Len(t, tasks, 1)
	assert.Equal(t, f.ownedTask.ID, tasks[0].ID)
}

func TestOutsiderLookupsReturnNotFound(t *testing.T) {
	f := setup(t)
	outsider := makeUser(t, f.gdb, "employee2", types.RoleMember)

	_, err := scope.FindProject(f.gdb, f.owned.ID, outsider.ID, types.RoleMember)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = scope.FindTask(f.gdb, f.ownedTask.ID, outsider.ID, types.RoleMember)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var projects []models.Project
	require.NoError(t, scope.Projects(f.gdb, outsider.ID, types.RoleMember).Find(&projects).Error)
	assert.Empty(t, projects)
}

func TestIsProjectMember(t *testing.T) {
	f := setup(t)

	isMember, err := scope.IsProjectMember(f.gdb, f.owned.ID, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	isMember, err = scope.IsProjectMember(f.gdb, f.foreign.ID, f.alice.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}
