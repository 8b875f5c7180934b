package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/auth"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
	"github.com/teamboard-dev/teamboard/internal/utils"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ProjectID   uint   `json:"project_id" binding:"required"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func taskResponse(task models.Task) types.TaskResponse {
	return types.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
	}
}

// CreateTask gates through the parent project: the caller must own the
// project the task is filed under.
func CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Status == "" {
		body.Status = types.TaskStatusTodo
	}

	if !types.ValidTaskStatus(body.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of: todo, in-progress, done"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, body.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if err := auth.CheckOwnership(project.OwnerID, userID); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not own this project"})
		return
	}

	task := models.Task{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		ProjectID:   project.ID,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    taskResponse(task),
	})
}

// ListTasksByProject returns a project's tasks newest first. Any
// authenticated caller who knows the project id may list them; an empty
// result is reported as not found.
func ListTasksByProject(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No tasks found for this project"})
		return
	}

	var tasks []models.Task

	if err := db.DB.Where("project_id = ?", projectID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	if len(tasks) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No tasks found for this project"})
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, taskResponse(task))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tasks retrieved successfully",
		"total":   len(response),
		"tasks":   response,
	})
}

// UpdateTask mutates a task by id for any authenticated caller; ownership
// of the parent project is not re-verified.
func UpdateTask(ctx *gin.Context) {
	var body UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Status != nil && !types.ValidTaskStatus(*body.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of: todo, in-progress, done"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	var task models.Task

	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if body.Title != nil {
		task.Title = *body.Title
	}

	if body.Description != nil {
		task.Description = *body.Description
	}

	if body.Status != nil {
		task.Status = *body.Status
	}

	if err := db.DB.Save(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    taskResponse(task),
	})
}

// DeleteTask removes a task by id for any authenticated caller, with the
// same ownership gap as UpdateTask.
func DeleteTask(ctx *gin.Context) {
	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	var task models.Task

	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":         "Task deleted successfully",
		"deleted_task_id": task.ID,
	})
}
