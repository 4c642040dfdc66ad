package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard-dev/sprintboard/db"
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/scope"
	"github.com/sprintboard-dev/sprintboard/internal/services"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"github.com/sprintboard-dev/sprintboard/internal/utils"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Project        uint       `json:"project" binding:"required"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *uint      `json:"estimated_hours"`
	ActualHours    uint       `json:"actual_hours"`
	AssignedToID   *uint      `json:"assigned_to_id"`
	LabelIDs       []uint     `json:"label_ids"`
}

type UpdateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *uint      `json:"estimated_hours"`
	ActualHours    *uint      `json:"actual_hours"`
	AssignedToID   *uint      `json:"assigned_to_id"`
	LabelIDs       []uint     `json:"label_ids"`
}

type StatusUpdateRequest struct {
	TaskID uint   `json:"task_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

func ListTasks(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := scope.Tasks(db.DB, currentUser.ID, currentUser.Role)

	if projectParam := ctx.Query("project"); projectParam != "" {
		projectID, err := strconv.ParseUint(projectParam, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project filter"})
			return
		}
		query = query.Where("tasks.project_id = ?", projectID)
	}

	if statusParam := ctx.Query("status"); statusParam != "" {
		query = query.Where("tasks.status = ?", statusParam)
	}

	var tasks []models.Task

	if err := preloadTask(query).Order("tasks.created_at DESC").Find(&tasks).Error; err != nil {
		log.Printf("Failed to retrieve tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	ctx.JSON(http.StatusOK, taskResponses(tasks))
}

func CreateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, req.Project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	task, err := services.CreateTask(db.DB, project, currentUser.ID, services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		AssignedToID:   req.AssignedToID,
		LabelIDs:       req.LabelIDs,
	})

	if err != nil {
		serviceError(ctx, err)
		return
	}

	response, err := loadTaskResponse(task.ID)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

func GetTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task

	if err := preloadTask(scope.Tasks(db.DB, currentUser.ID, currentUser.Role)).
		Where("tasks.id = ?", taskID).
		First(&task).Error; err != nil {
		serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func UpdateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := scope.FindTask(db.DB, taskID, currentUser.ID, currentUser.Role)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	err = services.UpdateTask(db.DB, &task, currentUser.ID, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		AssignedToID:   req.AssignedToID,
		LabelIDs:       req.LabelIDs,
	})

	if err != nil {
		serviceError(ctx, err)
		return
	}

	response, err := loadTaskResponse(task.ID)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := scope.FindTask(db.DB, taskID, currentUser.ID, currentUser.Role)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	if err := services.DeleteTask(db.DB, task.ID); err != nil {
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// StatusUpdate is the drag-and-drop board-move path.
func StatusUpdate(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req StatusUpdateRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.First(&task, req.TaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to retrieve task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if err := services.SetTaskStatus(db.DB, &task, currentUser.ID, req.Status); err != nil {
		serviceError(ctx, err)
		return
	}

	BroadcastBoardRefresh(strconv.FormatUint(uint64(task.ProjectID), 10))

	response, err := loadTaskResponse(task.ID)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func SearchTasks(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	queryParam := strings.TrimSpace(ctx.Query("q"))

	if queryParam == "" {
		ctx.JSON(http.StatusOK, gin.H{"tasks": []types.TaskResponse{}})
		return
	}

	pattern := "%" + strings.ToLower(queryParam) + "%"

	query := scope.Tasks(db.DB, currentUser.ID, currentUser.Role).
		Where("LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?", pattern, pattern)

	if projectParam := ctx.Query("project"); projectParam != "" {
		projectID, err := strconv.ParseUint(projectParam, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project filter"})
			return
		}
		query = query.Where("tasks.project_id = ?", projectID)
	}

	var tasks []models.Task

	if err := preloadTask(query).Order("tasks.created_at DESC").Limit(20).Find(&tasks).Error; err != nil {
		log.Printf("Failed to search tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search tasks"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": taskResponses(tasks)})
}

func loadTaskResponse(taskID uint) (types.TaskResponse, error) {
	var task models.Task

	if err := preloadTask(db.DB).First(&task, taskID).Error; err != nil {
		return types.TaskResponse{}, err
	}

	return taskResponse(task), nil
}
