// Package scope builds the visibility queries that bound every read and
// direct-access lookup to the requesting user's role.
//
// Visibility rules:
//   - member: projects they belong to, and those projects' tasks.
//   - owner_manager: projects they created or belong to; tasks only from
//     projects they created.
//
// A direct lookup that falls outside the visible set surfaces as
// gorm.ErrRecordNotFound, so callers respond 404 and never reveal whether the
// record exists.
package scope

import (
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"gorm.io/gorm"
)

// Projects returns the project query visible to the given user.
func Projects(gdb *gorm.DB, userID uint, role string) *gorm.DB {
	if role == types.RoleOwnerManager {
		return gdb.Model(&models.Project{}).
			Joins("LEFT JOIN project_memberships ON project_memberships.project_id = projects.id AND project_memberships.deleted_at IS NULL").
			Where("projects.created_by_id = ? OR project_memberships.user_id = ?", userID, userID).
			Distinct("projects.*")
	}

	return gdb.Model(&models.Project{}).
		Joins("JOIN project_memberships ON project_memberships.project_id = projects.id AND project_memberships.deleted_at IS NULL").
		Where("project_memberships.user_id = ?", userID)
}

// Tasks returns the task query visible to the given user. The owner_manager
// branch deliberately covers only self-created projects, not all projects the
// manager belongs to.
func Tasks(gdb *gorm.DB, userID uint, role string) *gorm.DB {
	if role == types.RoleOwnerManager {
		return gdb.Model(&models.Task{}).
			Joins("JOIN projects ON projects.id = tasks.project_id AND projects.deleted_at IS NULL").
			Where("projects.created_by_id = ?", userID)
	}

	return gdb.Model(&models.Task{}).
		Joins("JOIN project_memberships ON project_memberships.project_id = tasks.project_id AND project_memberships.deleted_at IS NULL").
		Where("project_memberships.user_id = ?", userID)
}

// FindProject resolves a direct project lookup within the user's scope.
func FindProject(gdb *gorm.DB, projectID, userID uint, role string) (models.Project, error) {
	var project models.Project

	err := Projects(gdb, userID, role).
		Where("projects.id = ?", projectID).
		First(&project).Error

	return project, err
}

// FindTask resolves a direct task lookup within the user's scope.
func FindTask(gdb *gorm.DB, taskID, userID uint, role string) (models.Task, error) {
	var task models.Task

	err := Tasks(gdb, userID, role).
		Where("tasks.id = ?", taskID).
		First(&task).Error

	return task, err
}

// IsProjectMember reports whether the user is in the project's member set.
func IsProjectMember(gdb *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64

	err := gdb.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error

	return count > 0, err
}
