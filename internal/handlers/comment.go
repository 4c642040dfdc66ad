package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard-dev/sprintboard/db"
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/scope"
	"github.com/sprintboard-dev/sprintboard/internal/services"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"github.com/sprintboard-dev/sprintboard/internal/utils"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func ListComments(ctx *gin.Context) {
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

	var comments []models.Comment

	if err := db.DB.Preload("Author").
		Where("task_id = ?", task.ID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		log.Printf("Failed to retrieve comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	responses := make([]types.CommentResponse, 0, len(comments))

	for _, comment := range comments {
		responses = append(responses, commentResponse(comment))
	}

	ctx.JSON(http.StatusOK, responses)
}

func CreateComment(ctx *gin.Context) {
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

	var req CreateCommentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := scope.FindTask(db.DB, taskID, currentUser.ID, currentUser.Role)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	comment, err := services.AddComment(db.DB, task, currentUser.ID, req.Content)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	if err := db.DB.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		log.Printf("Failed to reload comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, commentResponse(comment))
}
