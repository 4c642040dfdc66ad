package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard-dev/sprintboard/db"
	"github.com/sprintboard-dev/sprintboard/internal/services"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"github.com/sprintboard-dev/sprintboard/internal/utils"
)

type RecordBehaviorRequest struct {
	ActionType      string                 `json:"action_type" binding:"required"`
	TaskID          *uint                  `json:"task_id"`
	DurationSeconds *uint                  `json:"duration_seconds"`
	Metadata        map[string]interface{} `json:"metadata"`
}

func AnalyticsDashboard(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projectID *uint

	if projectParam := ctx.Query("project"); projectParam != "" {
		parsed, err := strconv.ParseUint(projectParam, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project filter"})
			return
		}
		id := uint(parsed)
		projectID = &id
	}

	metrics, err := services.Dashboard(db.DB, currentUser.ID, projectID)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, metrics)
}

func TrackBehavior(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req RecordBehaviorRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	behavior, err := services.RecordBehavior(db.DB, currentUser.ID, req.ActionType, req.TaskID, req.DurationSeconds, req.Metadata)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	var metadata map[string]interface{}
	if len(behavior.Metadata) > 0 {
		if err := json.Unmarshal(behavior.Metadata, &metadata); err != nil {
			metadata = map[string]interface{}{}
		}
	}

	ctx.JSON(http.StatusCreated, types.BehaviorResponse{
		ID:              behavior.ID,
		ActionType:      behavior.ActionType,
		Task:            behavior.TaskID,
		DurationSeconds: behavior.DurationSeconds,
		Metadata:        metadata,
		Timestamp:       behavior.CreatedAt,
	})
}
