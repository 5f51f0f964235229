package handler

import (
	"errors"
	"log"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	Tasks    *usecase.TaskService
	Activity ActivityRecorder
}

func (h *TaskHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	tasks, err := h.Tasks.ListVisible(c.Request.Context(), user, c.Query("project_id"))
	if err != nil {
		log.Printf("task list failed: %v", err)
		utils.InternalError(c, "Failed to fetch tasks")
		return
	}

	utils.Success(c, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.Tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		log.Printf("task fetch failed: %v", err)
		utils.InternalError(c, "Failed to fetch task")
		return
	}

	utils.Success(c, task)
}

func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid task data")
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), user, req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Project not found")
			return
		}
		log.Printf("task create failed: %v", err)
		utils.InternalError(c, "Failed to create task")
		return
	}

	recordActivity(c, h.Activity, user.UserID, model.ActionTaskCreated,
		task.TaskID, "Task", map[string]any{"title": task.Title})

	utils.Created(c, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid task data")
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			utils.NotFound(c, "Task not found")
		case errors.Is(err, usecase.ErrForbidden):
			utils.Forbidden(c, "Not allowed to update this task")
		default:
			log.Printf("task update failed: %v", err)
			utils.InternalError(c, "Failed to update task")
		}
		return
	}

	recordActivity(c, h.Activity, user.UserID, model.ActionTaskUpdated,
		task.TaskID, "Task", map[string]any{"title": task.Title})

	utils.Success(c, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	task, err := h.Tasks.Delete(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			utils.NotFound(c, "Task not found")
		case errors.Is(err, usecase.ErrForbidden):
			utils.Forbidden(c, "Not allowed to delete this task")
		default:
			log.Printf("task delete failed: %v", err)
			utils.InternalError(c, "Failed to delete task")
		}
		return
	}

	recordActivity(c, h.Activity, user.UserID, model.ActionTaskDeleted,
		task.TaskID, "Task", map[string]any{"title": task.Title})

	utils.Message(c, "Task deleted successfully")
}
