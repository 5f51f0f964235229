package handler

import (
	"errors"
	"log"
	"strconv"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	Projects *usecase.ProjectService
	Activity ActivityRecorder
}

func (h *ProjectHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	opts := usecase.ProjectListOptions{
		Status:    c.Query("status"),
		CreatedBy: c.Query("created_by"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}

	result, err := h.Projects.ListVisible(c.Request.Context(), user, opts)
	if err != nil {
		log.Printf("project list failed: %v", err)
		utils.InternalError(c, "Failed to fetch projects")
		return
	}

	utils.Success(c, result)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Project not found")
			return
		}
		log.Printf("project fetch failed: %v", err)
		utils.InternalError(c, "Failed to fetch project")
		return
	}

	utils.Success(c, project)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid project data")
		return
	}

	project, err := h.Projects.Create(c.Request.Context(), user, req)
	if err != nil {
		log.Printf("project create failed: %v", err)
		utils.InternalError(c, "Failed to create project")
		return
	}

	recordActivity(c, h.Activity, user.UserID, model.ActionProjectCreated,
		project.ProjectID, "Project", map[string]any{"name": project.Name})

	utils.Created(c, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid project data")
		return
	}

	project, err := h.Projects.Update(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			utils.NotFound(c, "Project not found")
		case errors.Is(err, usecase.ErrForbidden):
			utils.Forbidden(c, "Not allowed to update this project")
		default:
			log.Printf("project update failed: %v", err)
			utils.InternalError(c, "Failed to update project")
		}
		return
	}

	recordActivity(c, h.Activity, user.UserID, model.ActionProjectUpdated,
		project.ProjectID, "Project", map[string]any{"name": project.Name})

	utils.Success(c, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	project, err := h.Projects.Delete(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			utils.NotFound(c, "Project not found")
		case errors.Is(err, usecase.ErrForbidden):
			utils.Forbidden(c, "Not allowed to delete this project")
		default:
			log.Printf("project delete failed: %v", err)
			utils.InternalError(c, "Failed to delete project")
		}
		return
	}

	recordActivity(c, h.Activity, user.UserID, model.ActionProjectDeleted,
		project.ProjectID, "Project", map[string]any{"name": project.Name})

	utils.Message(c, "Project deleted successfully")
}

// currentUser is a package-local shorthand for middleware.CurrentUser.
func currentUser(c *gin.Context) (*model.User, bool) {
	return middleware.CurrentUser(c)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
