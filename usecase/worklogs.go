package usecase

import (
	"context"
	"time"

	"main/dto"
	"main/model"
	"main/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// WorklogStore is the slice of the worklog repository the service uses.
type WorklogStore interface {
	LogWork(ctx context.Context, p repository.LogWorkParams) (*model.Worklog, bool, error)
	FindByID(ctx context.Context, worklogID string) (*model.Worklog, error)
	AppendSession(ctx context.Context, worklogID string, duration *int, endDate *time.Time, notes *string) (*model.Worklog, error)
	List(ctx context.Context, filter bson.M) ([]*model.Worklog, error)
}

// TeamDirectory resolves a team lead's direct reports.
type TeamDirectory interface {
	FindTeamMemberIDs(ctx context.Context, leadID string) ([]string, error)
}

type WorklogService struct {
	Worklogs WorklogStore
	Users    TeamDirectory
}

// LogWork records the caller's sessions for today. The first call of the day
// for a (project, task) pair creates the entry; later calls append to it.
// Reports whether a new entry was created.
func (svc *WorklogService) LogWork(ctx context.Context, userID string, req dto.LogWorkRequest) (*model.Worklog, bool, error) {
	return svc.Worklogs.LogWork(ctx, repository.LogWorkParams{
		UserID:    userID,
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Durations: req.Durations,
		Notes:     req.Notes,
		Day:       model.Day(time.Now()),
	})
}

// Update appends a session to an existing log. Only the owning user may
// touch a log; anyone else gets ErrForbidden and the log stays unmodified.
func (svc *WorklogService) Update(ctx context.Context, callerID, worklogID string, req dto.UpdateWorklogRequest) (*model.Worklog, error) {
	log, err := svc.Worklogs.FindByID(ctx, worklogID)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrNotFound
	}
	if log.UserID != callerID {
		return nil, ErrForbidden
	}

	updated, err := svc.Worklogs.AppendSession(ctx, worklogID, req.Duration, req.EndDate, req.Notes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// ListMine returns the caller's own logs, newest day first.
func (svc *WorklogService) ListMine(ctx context.Context, userID string) ([]*model.Worklog, error) {
	logs, err := svc.Worklogs.List(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*model.Worklog{}
	}
	return logs, nil
}

// ListVisible returns the logs the caller's role may see. Plain Employees are
// rejected outright; they have ListMine.
func (svc *WorklogService) ListVisible(ctx context.Context, caller *model.User) ([]*model.Worklog, error) {
	var teamMemberIDs []string
	switch caller.Role.Normalize() {
	case model.RoleAdmin, model.RoleCoordinator:
	case model.RoleTeamLead:
		ids, err := svc.Users.FindTeamMemberIDs(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		teamMemberIDs = ids
	default:
		return nil, ErrForbidden
	}

	logs, err := svc.Worklogs.List(ctx, WorklogScope(caller.Role, caller.UserID, teamMemberIDs, bson.M{}))
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*model.Worklog{}
	}
	return logs, nil
}
