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

type WorklogHandler struct {
	Worklogs *usecase.WorklogService
	Activity ActivityRecorder
}

// My returns the caller's own logs, newest day first.
func (h *WorklogHandler) My(c *gin.Context) {
	userID := c.GetString("user_id")

	logs, err := h.Worklogs.ListMine(c.Request.Context(), userID)
	if err != nil {
		log.Printf("worklog list failed: %v", err)
		utils.InternalError(c, "Failed to fetch your logs")
		return
	}

	utils.Success(c, logs)
}

// List returns the logs the caller's role may see. Employees get 403; they
// have /worklogs/my.
func (h *WorklogHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	logs, err := h.Worklogs.ListVisible(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, usecase.ErrForbidden) {
			utils.Forbidden(c, "Unauthorized access")
			return
		}
		log.Printf("worklog list failed: %v", err)
		utils.InternalError(c, "Failed to fetch logs")
		return
	}

	utils.Success(c, logs)
}

// Log records work for today. The first call for a (project, task) pair
// creates the day's entry (201); later calls accumulate into it (200).
func (h *WorklogHandler) Log(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.LogWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid worklog data")
		return
	}

	entry, created, err := h.Worklogs.LogWork(c.Request.Context(), userID, req)
	if err != nil {
		log.Printf("log work failed: %v", err)
		utils.InternalError(c, "Failed to log work")
		return
	}

	if created {
		recordActivity(c, h.Activity, userID, model.ActionWorklogCreated,
			entry.WorklogID, "Worklog", map[string]any{"task_id": entry.TaskID})
		utils.Created(c, entry)
		return
	}

	recordActivity(c, h.Activity, userID, model.ActionWorklogUpdated,
		entry.WorklogID, "Worklog", map[string]any{"task_id": entry.TaskID})
	utils.Success(c, entry)
}

// Update appends a session to an existing log. Owner only.
func (h *WorklogHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.UpdateWorklogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid worklog data")
		return
	}

	entry, err := h.Worklogs.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			utils.NotFound(c, "Log not found")
		case errors.Is(err, usecase.ErrForbidden):
			utils.Forbidden(c, "Unauthorized")
		default:
			log.Printf("worklog update failed: %v", err)
			utils.InternalError(c, "Failed to update log")
		}
		return
	}

	recordActivity(c, h.Activity, userID, model.ActionWorklogUpdated,
		entry.WorklogID, "Worklog", map[string]any{"task_id": entry.TaskID})

	utils.Success(c, entry)
}
