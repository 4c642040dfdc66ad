package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"gorm.io/gorm"
)

type Overview struct {
	TotalTasks      int64   `json:"total_tasks"`
	CompletedTasks  int64   `json:"completed_tasks"`
	InProgressTasks int64   `json:"in_progress_tasks"`
	TodoTasks       int64   `json:"todo_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

type UserMetrics struct {
	AssignedTasks     int64   `json:"assigned_tasks"`
	CompletedTasks    int64   `json:"completed_tasks"`
	InProgressTasks   int64   `json:"in_progress_tasks"`
	ProductivityScore float64 `json:"productivity_score"`
}

type RecentActivity struct {
	TasksCompletedThisWeek int64 `json:"tasks_completed_this_week"`
	UserActionsThisWeek    int64 `json:"user_actions_this_week"`
	TotalUserActions       int64 `json:"total_user_actions"`
}

type GroupCount struct {
	Priority string `json:"priority,omitempty"`
	Status   string `json:"status,omitempty"`
	Count    int64  `json:"count"`
}

type Distributions struct {
	Priority []GroupCount `json:"priority"`
	Status   []GroupCount `json:"status"`
}

type DashboardMetrics struct {
	Overview       Overview       `json:"overview"`
	UserMetrics    UserMetrics    `json:"user_metrics"`
	RecentActivity RecentActivity `json:"recent_activity"`
	Distributions  Distributions  `json:"distributions"`
}

// Dashboard computes the read-only aggregate payload. The task set is
// optionally narrowed to one project; user metrics always refer to the
// requesting user.
func Dashboard(gdb *gorm.DB, userID uint, projectID *uint) (DashboardMetrics, error) {
	tasks := func() *gorm.DB {
		q := gdb.Model(&models.Task{})
		if projectID != nil {
			q = q.Where("project_id = ?", *projectID)
		}
		return q
	}

	var metrics DashboardMetrics

	if err := tasks().Count(&metrics.Overview.TotalTasks).Error; err != nil {
		return metrics, err
	}
	if err := tasks().Where("status = ?", types.StatusDone).Count(&metrics.Overview.CompletedTasks).Error; err != nil {
		return metrics, err
	}
	if err := tasks().Where("status = ?", types.StatusInProgress).Count(&metrics.Overview.InProgressTasks).Error; err != nil {
		return metrics, err
	}
	if err := tasks().Where("status = ?", types.StatusTodo).Count(&metrics.Overview.TodoTasks).Error; err != nil {
		return metrics, err
	}

	// Completion rate is 0 when there are no tasks at all.
	var completionRate float64
	if metrics.Overview.TotalTasks > 0 {
		completionRate = float64(metrics.Overview.CompletedTasks) / float64(metrics.Overview.TotalTasks) * 100
	}
	metrics.Overview.CompletionRate = round2(completionRate)

	if err := tasks().Where("assigned_to_id = ?", userID).Count(&metrics.UserMetrics.AssignedTasks).Error; err != nil {
		return metrics, err
	}
	if err := tasks().Where("assigned_to_id = ? AND status = ?", userID, types.StatusDone).
		Count(&metrics.UserMetrics.CompletedTasks).Error; err != nil {
		return metrics, err
	}
	if err := tasks().Where("assigned_to_id = ? AND status = ?", userID, types.StatusInProgress).
		Count(&metrics.UserMetrics.InProgressTasks).Error; err != nil {
		return metrics, err
	}

	lastWeek := time.Now().Add(-7 * 24 * time.Hour)

	if err := tasks().Where("status = ? AND updated_at >= ?", types.StatusDone, lastWeek).
		Count(&metrics.RecentActivity.TasksCompletedThisWeek).Error; err != nil {
		return metrics, err
	}

	behaviors := gdb.Model(&models.UserBehavior{}).Where("user_id = ?", userID)
	if err := behaviors.Session(&gorm.Session{}).Count(&metrics.RecentActivity.TotalUserActions).Error; err != nil {
		return metrics, err
	}
	if err := behaviors.Session(&gorm.Session{}).Where("created_at >= ?", lastWeek).
		Count(&metrics.RecentActivity.UserActionsThisWeek).Error; err != nil {
		return metrics, err
	}

	// Productivity score: min(100, completion_rate + recent_actions * 2),
	// zero when no tasks exist. A display heuristic, nothing more.
	var score float64
	if metrics.Overview.TotalTasks > 0 {
		score = math.Min(100, completionRate+float64(metrics.RecentActivity.UserActionsThisWeek)*2)
	}
	metrics.UserMetrics.ProductivityScore = round2(score)

	if err := tasks().Select("priority, COUNT(*) AS count").Group("priority").
		Scan(&metrics.Distributions.Priority).Error; err != nil {
		return metrics, err
	}
	if err := tasks().Select("status, COUNT(*) AS count").Group("status").
		Scan(&metrics.Distributions.Status).Error; err != nil {
		return metrics, err
	}

	return metrics, nil
}

// RecordBehavior appends a behavior event for the user. Events are write-only
// analytics input; nothing ever mutates or deletes them.
func RecordBehavior(gdb *gorm.DB, userID uint, actionType string, taskID *uint, durationSeconds *uint, metadata map[string]interface{}) (models.UserBehavior, error) {
	if strings.TrimSpace(actionType) == "" {
		return models.UserBehavior{}, fmt.Errorf("%w: action_type is required", ErrValidation)
	}

	if taskID != nil {
		var count int64
		if err := gdb.Model(&models.Task{}).Where("id = ?", *taskID).Count(&count).Error; err != nil {
			return models.UserBehavior{}, err
		}
		if count == 0 {
			return models.UserBehavior{}, fmt.Errorf("%w: task does not exist", ErrValidation)
		}
	}

	metadataJSON, err := MetadataJSON(metadata)
	if err != nil {
		return models.UserBehavior{}, err
	}

	behavior := models.UserBehavior{
		UserID:          userID,
		ActionType:      actionType,
		TaskID:          taskID,
		DurationSeconds: durationSeconds,
		Metadata:        metadataJSON,
	}

	if err := gdb.Create(&behavior).Error; err != nil {
		return models.UserBehavior{}, err
	}

	return behavior, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
