package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard-dev/sprintboard/db"
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/scope"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"github.com/sprintboard-dev/sprintboard/internal/utils"
)

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func ListLabels(ctx *gin.Context) {
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

	project, err := scope.FindProject(db.DB, projectID, currentUser.ID, currentUser.Role)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	var labels []models.Label

	if err := db.DB.Where("project_id = ?", project.ID).Order("id ASC").Find(&labels).Error; err != nil {
		log.Printf("Failed to retrieve labels: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}

	responses := make([]types.LabelResponse, 0, len(labels))

	for _, label := range labels {
		responses = append(responses, labelResponse(label))
	}

	ctx.JSON(http.StatusOK, responses)
}

func CreateLabel(ctx *gin.Context) {
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

	var req CreateLabelRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := scope.FindProject(db.DB, projectID, currentUser.ID, currentUser.Role)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	if req.Color == "" {
		req.Color = "#007bff"
	}

	label := models.Label{
		Name:      req.Name,
		Color:     req.Color,
		ProjectID: project.ID,
	}

	if err := db.DB.Create(&label).Error; err != nil {
		log.Printf("Failed to create label: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create label"})
		return
	}

	ctx.JSON(http.StatusCreated, labelResponse(label))
}
