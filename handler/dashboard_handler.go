package handler

import (
	"context"
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type DashboardUserStore interface {
	CountUsers(ctx context.Context, filter bson.M) (int64, error)
	RoleDistribution(ctx context.Context) (map[string]int64, error)
}

type DashboardProjectStore interface {
	CountProjects(ctx context.Context, filter bson.M) (int64, error)
	StatusBreakdown(ctx context.Context) (map[string]int64, error)
	FindForMember(ctx context.Context, userID string) ([]*model.Project, error)
}

type DashboardTaskStore interface {
	CountTasks(ctx context.Context, filter bson.M) (int64, error)
	StatusBreakdown(ctx context.Context) (map[string]int64, error)
}

type DashboardWorklogStore interface {
	CountWorklogs(ctx context.Context, filter bson.M) (int64, error)
	Summarize(ctx context.Context, filter bson.M) (dto.WorklogSummary, error)
}

type DashboardHandler struct {
	Users    DashboardUserStore
	Projects DashboardProjectStore
	Tasks    DashboardTaskStore
	Worklogs DashboardWorklogStore
}

// Stats assembles the role-aware dashboard payload. Results are cached per
// (role, user) in redis when the stats cache is up; aggregations hit Mongo
// directly otherwise.
func (h *DashboardHandler) Stats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	ctx := c.Request.Context()
	cacheKey := "dashboard:" + string(user.Role.Normalize()) + ":" + user.UserID

	if services.GlobalStatsCache != nil {
		var cached dto.DashboardStats
		if hit, err := services.GlobalStatsCache.Get(ctx, cacheKey, &cached); err == nil && hit {
			utils.Success(c, cached)
			return
		}
	}

	stats, err := h.buildStats(ctx, user)
	if err != nil {
		log.Printf("dashboard stats failed: %v", err)
		utils.InternalError(c, "Failed to fetch dashboard stats")
		return
	}

	if services.GlobalStatsCache != nil {
		if err := services.GlobalStatsCache.Set(ctx, cacheKey, stats); err != nil {
			log.Printf("failed to cache dashboard stats: %v", err)
		}
	}

	utils.Success(c, stats)
}

func (h *DashboardHandler) buildStats(ctx context.Context, user *model.User) (*dto.DashboardStats, error) {
	totalUsers, err := h.Users.CountUsers(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	totalProjects, err := h.Projects.CountProjects(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	totalTasks, err := h.Tasks.CountTasks(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	totalWorklogs, err := h.Worklogs.CountWorklogs(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	projectStatus, err := h.Projects.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	taskStatus, err := h.Tasks.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	roleDistribution, err := h.Users.RoleDistribution(ctx)
	if err != nil {
		return nil, err
	}

	pendingTasks := taskStatus[string(model.TaskTodo)] +
		taskStatus[string(model.TaskInProgress)] +
		taskStatus[string(model.TaskReview)]

	stats := &dto.DashboardStats{
		TotalUsers:    totalUsers,
		TotalProjects: totalProjects,
		TotalTasks:    totalTasks,
		TotalWorklogs: totalWorklogs,

		ActiveProjects:     projectStatus[string(model.ProjectActive)],
		InProgressProjects: projectStatus[string(model.ProjectInProgress)],
		OnHoldProjects:     projectStatus[string(model.ProjectOnHold)],
		CompletedProjects:  projectStatus[string(model.ProjectCompleted)],

		CompletedTasks: taskStatus[string(model.TaskCompleted)],
		PendingTasks:   pendingTasks,

		ProjectStatus:    projectStatus,
		RoleDistribution: roleDistribution,
	}

	switch user.Role.Normalize() {
	case model.RoleTeamLead:
		stats.TaskProgress = taskStatus

	case model.RoleEmployee:
		projects, err := h.Projects.FindForMember(ctx, user.UserID)
		if err != nil {
			return nil, err
		}
		stats.UserTotalProjects = int64(len(projects))
		for _, p := range projects {
			switch p.Status {
			case model.ProjectCompleted:
				stats.UserCompletedProjects++
			case model.ProjectActive, model.ProjectInProgress:
				stats.UserInProgressProjects++
			}
		}

		today, err := h.Worklogs.Summarize(ctx, bson.M{
			"user_id": user.UserID,
			"date":    model.Day(time.Now()),
		})
		if err != nil {
			return nil, err
		}
		stats.TodayMinutes = today.TotalMinutes

		all, err := h.Worklogs.Summarize(ctx, bson.M{"user_id": user.UserID})
		if err != nil {
			return nil, err
		}
		stats.TotalMinutes = all.TotalMinutes
	}

	return stats, nil
}
