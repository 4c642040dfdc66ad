package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/services"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"gorm.io/gorm"
)

func userResponse(u models.User) types.UserResponse {
	return types.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		AvatarURL:  u.AvatarURL,
		DateJoined: u.CreatedAt,
	}
}

func labelResponse(l models.Label) types.LabelResponse {
	return types.LabelResponse{
		ID:        l.ID,
		Name:      l.Name,
		Color:     l.Color,
		CreatedAt: l.CreatedAt,
	}
}

func commentResponse(c models.Comment) types.CommentResponse {
	return types.CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		Author:    userResponse(c.Author),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func activityLogResponse(a models.ActivityLog) types.ActivityLogResponse {
	return types.ActivityLogResponse{
		ID:          a.ID,
		Action:      a.Action,
		Description: a.Description,
		User:        userResponse(a.User),
		OldValue:    a.OldValue,
		NewValue:    a.NewValue,
		Timestamp:   a.CreatedAt,
	}
}

// taskResponse shapes a task with its preloaded associations. Activity logs
// are capped at the ten most recent entries per task.
func taskResponse(t models.Task) types.TaskResponse {
	labels := make([]types.LabelResponse, 0, len(t.Labels))
	for _, label := range t.Labels {
		labels = append(labels, labelResponse(label))
	}

	comments := make([]types.CommentResponse, 0, len(t.Comments))
	for _, comment := range t.Comments {
		comments = append(comments, commentResponse(comment))
	}

	logs := t.ActivityLogs
	if len(logs) > 10 {
		logs = logs[:10]
	}
	activities := make([]types.ActivityLogResponse, 0, len(logs))
	for _, entry := range logs {
		activities = append(activities, activityLogResponse(entry))
	}

	var assignedTo *types.UserResponse
	if t.AssignedTo != nil {
		assignee := userResponse(*t.AssignedTo)
		assignedTo = &assignee
	}

	return types.TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Project:        t.ProjectID,
		AssignedTo:     assignedTo,
		CreatedBy:      userResponse(t.CreatedBy),
		Status:         t.Status,
		Priority:       t.Priority,
		Labels:         labels,
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		TaskKey:        t.TaskKey,
		Comments:       comments,
		ActivityLogs:   activities,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func taskResponses(tasks []models.Task) []types.TaskResponse {
	responses := make([]types.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskResponse(task))
	}
	return responses
}

// preloadTask attaches every association the task serialization needs.
func preloadTask(q *gorm.DB) *gorm.DB {
	return q.
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("Labels").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.Author").
		Preload("ActivityLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("activity_logs.created_at DESC, activity_logs.id DESC")
		}).
		Preload("ActivityLogs.User")
}

// serviceError translates the service error taxonomy to HTTP. Out-of-scope
// and missing records both map to 404 so existence is never leaked.
func serviceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrAccessDenied),
		errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.Printf("Internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
