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

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MemberIDs   []uint `json:"member_ids"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
	MemberIDs   *[]uint `json:"member_ids"`
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: userID,
		IsActive:    true,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	if len(req.MemberIDs) > 0 {
		if err := services.ReplaceProjectMembers(db.DB, project.ID, req.MemberIDs); err != nil {
			log.Printf("Failed to set project members: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set project members"})
			return
		}
	}

	response, err := projectResponse(project)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := scope.Projects(db.DB, currentUser.ID, currentUser.Role).
		Order("projects.created_at DESC").
		Find(&projects).Error; err != nil {
		log.Printf("Failed to retrieve projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	responses := make([]types.ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response, err := projectResponse(project)
		if err != nil {
			serviceError(ctx, err)
			return
		}
		responses = append(responses, response)
	}

	ctx.JSON(http.StatusOK, responses)
}

func GetProject(ctx *gin.Context) {
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

	response, err := projectResponse(project)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateProject(ctx *gin.Context) {
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

	var req UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := scope.FindProject(db.DB, projectID, currentUser.ID, currentUser.Role)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	project.Name = req.Name
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if err := db.DB.Save(&project).Error; err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	if req.MemberIDs != nil {
		if err := services.ReplaceProjectMembers(db.DB, project.ID, *req.MemberIDs); err != nil {
			log.Printf("Failed to update project members: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project members"})
			return
		}
	}

	response, err := projectResponse(project)

	if err != nil {
		serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteProject(ctx *gin.Context) {
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

	if err := services.DeleteProject(db.DB, project.ID); err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// projectResponse assembles the members, labels and task count alongside the
// project record.
func projectResponse(project models.Project) (types.ProjectResponse, error) {
	members, err := services.ProjectMembers(db.DB, project.ID)
	if err != nil {
		return types.ProjectResponse{}, err
	}

	var labels []models.Label
	if err := db.DB.Where("project_id = ?", project.ID).Order("id ASC").Find(&labels).Error; err != nil {
		return types.ProjectResponse{}, err
	}

	var taskCount int64
	if err := db.DB.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount).Error; err != nil {
		return types.ProjectResponse{}, err
	}

	memberResponses := make([]types.UserResponse, 0, len(members))
	for _, member := range members {
		memberResponses = append(memberResponses, userResponse(member))
	}

	labelResponses := make([]types.LabelResponse, 0, len(labels))
	for _, label := range labels {
		labelResponses = append(labelResponses, labelResponse(label))
	}

	return types.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   project.CreatedByID,
		Members:     memberResponses,
		Labels:      labelResponses,
		TaskCount:   taskCount,
		IsActive:    project.IsActive,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}, nil
}
