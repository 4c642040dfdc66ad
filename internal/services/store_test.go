package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/services"
	"github.com/sprintboard-dev/sprintboard/internal/types"
)

func TestDeleteProjectCascades(t *testing.T) {
	gdb := setupTestDB(t)
	creator := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	member := createUser(t, gdb, "employee1", types.RoleMember)
	project := createProject(t, gdb, "Teams in Space", creator, member)
	label := createLabel(t, gdb, project, "SPACE TRAVEL PARTNERS")

	task := createTask(t, gdb, project, creator, services.CreateTaskInput{
		Title:    "Engage Jupiter Express",
		LabelIDs: []uint{label.ID},
	})
	_, err := services.AddComment(gdb, task, member.ID, "On it")
	require.NoError(t, err)

	require.NoError(t, services.DeleteProject(gdb, project.ID))

	var projectCount, taskCount, labelCount, commentCount, logCount, membershipCount int64
	gdb.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount)
	gdb.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount)
	gdb.Model(&models.Label{}).Where("project_id = ?", project.ID).Count(&labelCount)
	gdb.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&commentCount)
	gdb.Model(&models.ActivityLog{}).Where("task_id = ?", task.ID).Count(&logCount)
	gdb.Model(&models.ProjectMembership{}).Where("project_id = ?", project.ID).Count(&membershipCount)

	assert.Zero(t, projectCount)
	assert.Zero(t, taskCount)
	assert.Zero(t, labelCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, logCount)
	assert.Zero(t, membershipCount)
}

func TestDeleteTaskRemovesDependents(t *testing.T) {
	gdb := setupTestDB(t)
	creator := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	project := createProject(t, gdb, "Teams in Space", creator)
	label := createLabel(t, gdb, project, "SeeSpaceEZ Plus")

	task := createTask(t, gdb, project, creator, services.CreateTaskInput{
		Title:    "Flight API is slow",
		LabelIDs: []uint{label.ID},
	})
	keep := createTask(t, gdb, project, creator, services.CreateTaskInput{Title: "Unrelated"})

	_, err := services.AddComment(gdb, task, creator.ID, "Investigating")
	require.NoError(t, err)

	require.NoError(t, services.DeleteTask(gdb, task.ID))

	var taskCount, commentCount, logCount, linkCount int64
	gdb.Model(&models.Task{}).Where("id = ?", task.ID).Count(&taskCount)
	gdb.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&commentCount)
	gdb.Model(&models.ActivityLog{}).Where("task_id = ?", task.ID).Count(&logCount)
	gdb.Raw("SELECT COUNT(*) FROM task_labels WHERE task_id = ?", task.ID).Scan(&linkCount)

	assert.Zero(t, taskCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, logCount)
	assert.Zero(t, linkCount)

	// The sibling task is untouched.
	var kept models.Task
	assert.NoError(t, gdb.First(&kept, keep.ID).Error)
}

func TestDeleteUserNullifiesAssignmentsAndRemovesOwnRecords(t *testing.T) {
	gdb := setupTestDB(t)
	creator := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	member := createUser(t, gdb, "employee1", types.RoleMember)
	project := createProject(t, gdb, "Teams in Space", creator, member)

	task := createTask(t, gdb, project, creator, services.CreateTaskInput{
		Title:        "Draft network plan",
		AssignedToID: &member.ID,
	})
	_, err := services.AddComment(gdb, task, member.ID, "Working on it")
	require.NoError(t, err)

	require.NoError(t, services.DeleteUser(gdb, member.ID))

	var loaded models.Task
	require.NoError(t, gdb.First(&loaded, task.ID).Error)
	assert.Nil(t, loaded.AssignedToID)

	var userCount, commentCount, membershipCount int64
	gdb.Model(&models.User{}).Where("id = ?", member.ID).Count(&userCount)
	gdb.Model(&models.Comment{}).Where("author_id = ?", member.ID).Count(&commentCount)
	gdb.Model(&models.ProjectMembership{}).Where("user_id = ?", member.ID).Count(&membershipCount)

	assert.Zero(t, userCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, membershipCount)
}

func TestDeleteUserRemovesAuthoredProjects(t *testing.T) {
	gdb := setupTestDB(t)
	creator := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	member := createUser(t, gdb, "employee1", types.RoleMember)
	project := createProject(t, gdb, "Teams in Space", creator, member)
	createTask(t, gdb, project, creator, services.CreateTaskInput{Title: "Engage Jupiter Express"})

	require.NoError(t, services.DeleteUser(gdb, creator.ID))

	var projectCount, taskCount int64
	gdb.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount)
	gdb.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount)

	assert.Zero(t, projectCount)
	assert.Zero(t, taskCount)

	// The other user survives the cascade.
	var survivor models.User
	assert.NoError(t, gdb.First(&survivor, member.ID).Error)
}

func TestReplaceProjectMembersSwapsSet(t *testing.T) {
	gdb := setupTestDB(t)
	creator := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	alice := createUser(t, gdb, "employee1", types.RoleMember)
	bob := createUser(t, gdb, "employee2", types.RoleMember)
	project := createProject(t, gdb, "Teams in Space", creator, alice)

	// Unknown IDs are ignored rather than failing the whole assignment.
	require.NoError(t, services.ReplaceProjectMembers(gdb, project.ID, []uint{bob.ID, 9999}))

	members, err := services.ProjectMembers(gdb, project.ID)
	require.NoError(t, err)

	require.Len(t, members, 1)
	assert.Equal(t, bob.ID, members[0].ID)
}

func TestReplaceProjectMembersClearsOnEmpty(t *testing.T) {
	gdb := setupTestDB(t)
	creator := createUser(t, gdb, "scrum_master", types.RoleOwnerManager)
	alice := createUser(t, gdb, "employee1", types.RoleMember)
	project := createProject(t, gdb, "Teams in Space", creator, alice)

	require.NoError(t, services.ReplaceProjectMembers(gdb, project.ID, nil))

	members, err := services.ProjectMembers(gdb, project.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
