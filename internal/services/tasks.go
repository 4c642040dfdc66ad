package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Title          string
	Description    string
	Status         string
	Priority       string
	DueDate        *time.Time
	EstimatedHours *uint
	ActualHours    uint
	AssignedToID   *uint
	LabelIDs       []uint
}

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
// LabelIDs nil means unchanged, an empty slice clears the label set.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *string
	Priority       *string
	DueDate        *time.Time
	EstimatedHours *uint
	ActualHours    *uint
	AssignedToID   *uint
	LabelIDs       []uint
}

// CreateTask allocates the task key, persists the task with its associations
// and appends the "created" activity log, all in one transaction.
//
// Key allocation is count-based (PREFIX-N where N is the number of tasks ever
// created in the project, plus one). The count includes soft-deleted rows so a
// number is never reused; the unique index on task_key turns a concurrent
// allocation race into an insert error instead of a silent duplicate.
func CreateTask(gdb *gorm.DB, project models.Project, creatorID uint, in CreateTaskInput) (models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if in.Status == "" {
		in.Status = types.StatusTodo
	}
	if !types.ValidStatus(in.Status) {
		return models.Task{}, fmt.Errorf("%w: invalid status %q", ErrValidation, in.Status)
	}

	if in.Priority == "" {
		in.Priority = types.PriorityMedium
	}
	if !types.ValidPriority(in.Priority) {
		return models.Task{}, fmt.Errorf("%w: invalid priority %q", ErrValidation, in.Priority)
	}

	task := models.Task{
		Title:          in.Title,
		Description:    in.Description,
		ProjectID:      project.ID,
		CreatedByID:    creatorID,
		Status:         in.Status,
		Priority:       in.Priority,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		key, err := allocateTaskKey(tx, project)
		if err != nil {
			return err
		}
		task.TaskKey = key

		if in.AssignedToID != nil {
			if err := checkAssignee(tx, *in.AssignedToID); err != nil {
				return err
			}
			task.AssignedToID = in.AssignedToID
		}

		if err := tx.Create(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: task key %s already allocated", ErrConflict, key)
			}
			return err
		}

		if len(in.LabelIDs) > 0 {
			labels, err := projectLabels(tx, project.ID, in.LabelIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&task).Association("Labels").Append(labels); err != nil {
				return err
			}
		}

		return tx.Create(&models.ActivityLog{
			TaskID:      task.ID,
			UserID:      creatorID,
			Action:      types.ActionCreated,
			Description: fmt.Sprintf("Task created: %s", task.Title),
		}).Error
	})

	if err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// UpdateTask applies a partial field update. A status change appends exactly
// one "status_changed" activity log; writing the same status back appends
// none. Label and assignee associations are replaced after the field update.
func UpdateTask(gdb *gorm.DB, task *models.Task, actorID uint, in UpdateTaskInput) error {
	if in.Status != nil && !types.ValidStatus(*in.Status) {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, *in.Status)
	}
	if in.Priority != nil && !types.ValidPriority(*in.Priority) {
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, *in.Priority)
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		oldStatus := task.Status

		if in.Title != nil {
			task.Title = *in.Title
		}
		if in.Description != nil {
			task.Description = *in.Description
		}
		if in.Status != nil {
			task.Status = *in.Status
		}
		if in.Priority != nil {
			task.Priority = *in.Priority
		}
		if in.DueDate != nil {
			task.DueDate = in.DueDate
		}
		if in.EstimatedHours != nil {
			task.EstimatedHours = in.EstimatedHours
		}
		if in.ActualHours != nil {
			task.ActualHours = *in.ActualHours
		}

		if err := tx.Save(task).Error; err != nil {
			return err
		}

		if in.LabelIDs != nil {
			labels, err := projectLabels(tx, task.ProjectID, in.LabelIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(task).Association("Labels").Replace(labels); err != nil {
				return err
			}
		}

		if in.AssignedToID != nil {
			if err := checkAssignee(tx, *in.AssignedToID); err != nil {
				return err
			}
			task.AssignedToID = in.AssignedToID
			if err := tx.Model(task).Update("assigned_to_id", in.AssignedToID).Error; err != nil {
				return err
			}
		}

		if task.Status != oldStatus {
			return appendStatusLog(tx, task.ID, actorID, oldStatus, task.Status)
		}

		return nil
	})
}

// SetTaskStatus is the board-move path. It honors the same log-exactly-once
// contract as UpdateTask and additionally records a "task_status_update"
// behavior event carrying the transition.
func SetTaskStatus(gdb *gorm.DB, task *models.Task, actorID uint, newStatus string) error {
	if !types.ValidStatus(newStatus) {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, newStatus)
	}

	oldStatus := task.Status

	if newStatus == oldStatus {
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		task.Status = newStatus

		if err := tx.Model(task).Update("status", newStatus).Error; err != nil {
			return err
		}

		if err := appendStatusLog(tx, task.ID, actorID, oldStatus, newStatus); err != nil {
			return err
		}

		metadata, err := MetadataJSON(map[string]interface{}{
			"old_status": oldStatus,
			"new_status": newStatus,
		})
		if err != nil {
			return err
		}

		taskID := task.ID
		return tx.Create(&models.UserBehavior{
			UserID:     actorID,
			ActionType: "task_status_update",
			TaskID:     &taskID,
			Metadata:   metadata,
		}).Error
	})
}

// AddComment persists the comment and appends the "commented" activity log in
// one transaction. The log description carries a summary of the content.
func AddComment(gdb *gorm.DB, task models.Task, authorID uint, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	comment := models.Comment{
		TaskID:   task.ID,
		AuthorID: authorID,
		Content:  content,
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		return tx.Create(&models.ActivityLog{
			TaskID:      task.ID,
			UserID:      authorID,
			Action:      types.ActionCommented,
			Description: fmt.Sprintf("Added comment: %s", summarize(content, 50)),
		}).Error
	})

	if err != nil {
		return models.Comment{}, err
	}

	return comment, nil
}

func allocateTaskKey(tx *gorm.DB, project models.Project) (string, error) {
	var count int64

	// Unscoped: soft-deleted tasks keep their number so later allocations
	// cannot collide with a key still held by a deleted row.
	err := tx.Unscoped().Model(&models.Task{}).
		Where("project_id = ?", project.ID).
		Count(&count).Error
	if err != nil {
		return "", err
	}

	runes := []rune(project.Name)
	if len(runes) > 3 {
		runes = runes[:3]
	}

	return fmt.Sprintf("%s-%d", strings.ToUpper(string(runes)), count+1), nil
}

func appendStatusLog(tx *gorm.DB, taskID, actorID uint, oldStatus, newStatus string) error {
	return tx.Create(&models.ActivityLog{
		TaskID:      taskID,
		UserID:      actorID,
		Action:      types.ActionStatusChanged,
		Description: fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus),
		OldValue:    &oldStatus,
		NewValue:    &newStatus,
	}).Error
}

// projectLabels resolves label IDs and rejects any label outside the project.
func projectLabels(tx *gorm.DB, projectID uint, labelIDs []uint) ([]models.Label, error) {
	if len(labelIDs) == 0 {
		return nil, nil
	}

	var labels []models.Label

	err := tx.Where("id IN ? AND project_id = ?", labelIDs, projectID).Find(&labels).Error
	if err != nil {
		return nil, err
	}

	if len(labels) != len(uniqueIDs(labelIDs)) {
		return nil, fmt.Errorf("%w: labels must belong to the task's project", ErrValidation)
	}

	return labels, nil
}

func checkAssignee(tx *gorm.DB, userID uint) error {
	var count int64

	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: assignee does not exist", ErrValidation)
	}

	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func summarize(content string, max int) string {
	runes := []rune(content)
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes) + "..."
}

// MetadataJSON marshals a free-form metadata bag into the JSON column type.
func MetadataJSON(metadata map[string]interface{}) (datatypes.JSON, error) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	return datatypes.JSON(raw), nil
}
