package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard-dev/sprintboard/db"
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/scope"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"github.com/sprintboard-dev/sprintboard/internal/utils"
	"gorm.io/gorm"
)

// KanbanBoard returns the project's tasks grouped into one column per status,
// each with its display name and count.
func KanbanBoard(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if currentUser.Role == types.RoleMember {
		isMember, err := scope.IsProjectMember(db.DB, project.ID, currentUser.ID)
		if err != nil {
			log.Printf("Failed to check project membership: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !isMember {
			// Same shape as a missing project, so membership cannot be probed.
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
	}

	board := make(gin.H, len(types.TaskStatuses))

	for _, status := range types.TaskStatuses {
		var tasks []models.Task

		if err := preloadTask(db.DB.Model(&models.Task{})).
			Where("tasks.project_id = ? AND tasks.status = ?", project.ID, status).
			Order("tasks.created_at DESC").
			Find(&tasks).Error; err != nil {
			log.Printf("Failed to retrieve board tasks: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board tasks"})
			return
		}

		board[status] = gin.H{
			"name":  types.StatusNames[status],
			"count": len(tasks),
			"tasks": taskResponses(tasks),
		}
	}

	ctx.JSON(http.StatusOK, board)
}
