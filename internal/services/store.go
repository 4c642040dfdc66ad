package services

import (
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"gorm.io/gorm"
)

// Cascade deletes run as explicit statements in one transaction rather than
// leaning on database foreign-key actions, so the semantics hold on every
// backend the store runs against.

// DeleteTask removes a task together with its comments, activity logs,
// behavior references and label links.
func DeleteTask(gdb *gorm.DB, taskID uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		return deleteTasks(tx, []uint{taskID})
	})
}

// DeleteProject removes a project and everything under it: memberships,
// labels, tasks and the tasks' dependent records.
func DeleteProject(gdb *gorm.DB, projectID uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		return deleteProject(tx, projectID)
	})
}

// DeleteUser removes a user. Task assignments pointing at the user become
// null; the user's own comments, activity logs, behavior events, authored
// tasks and authored projects are removed.
func DeleteUser(gdb *gorm.DB, userID uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("assigned_to_id = ?", userID).
			Update("assigned_to_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("author_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserBehavior{}).Error; err != nil {
			return err
		}

		var taskIDs []uint
		if err := tx.Model(&models.Task{}).
			Where("created_by_id = ?", userID).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if err := deleteTasks(tx, taskIDs); err != nil {
			return err
		}

		var projectIDs []uint
		if err := tx.Model(&models.Project{}).
			Where("created_by_id = ?", userID).
			Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		for _, projectID := range projectIDs {
			if err := deleteProject(tx, projectID); err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.ProjectMembership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
}

// ProjectMembers returns the project's member set.
func ProjectMembers(gdb *gorm.DB, projectID uint) ([]models.User, error) {
	var members []models.User

	err := gdb.Model(&models.User{}).
		Joins("JOIN project_memberships ON project_memberships.user_id = users.id AND project_memberships.deleted_at IS NULL").
		Where("project_memberships.project_id = ?", projectID).
		Find(&members).Error

	return members, err
}

// ReplaceProjectMembers swaps the project's member set for the given users.
// Unknown user IDs are ignored, mirroring a set assignment.
func ReplaceProjectMembers(gdb *gorm.DB, projectID uint, memberIDs []uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("project_id = ?", projectID).
			Delete(&models.ProjectMembership{}).Error; err != nil {
			return err
		}

		if len(memberIDs) == 0 {
			return nil
		}

		var userIDs []uint
		if err := tx.Model(&models.User{}).
			Where("id IN ?", memberIDs).
			Pluck("id", &userIDs).Error; err != nil {
			return err
		}

		for _, userID := range userIDs {
			membership := models.ProjectMembership{UserID: userID, ProjectID: projectID}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func deleteProject(tx *gorm.DB, projectID uint) error {
	var taskIDs []uint
	if err := tx.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if err := deleteTasks(tx, taskIDs); err != nil {
		return err
	}

	if err := tx.Where("project_id = ?", projectID).Delete(&models.Label{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("project_id = ?", projectID).Delete(&models.ProjectMembership{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Project{}, projectID).Error
}

func deleteTasks(tx *gorm.DB, taskIDs []uint) error {
	if len(taskIDs) == 0 {
		return nil
	}

	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.ActivityLog{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.UserBehavior{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM task_labels WHERE task_id IN ?", taskIDs).Error; err != nil {
		return err
	}

	return tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error
}
