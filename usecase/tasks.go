package usecase

import (
	"context"

	"main/dto"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// TaskStore is the slice of the task repository the service uses.
type TaskStore interface {
	Insert(ctx context.Context, task *model.Task) error
	List(ctx context.Context, filter bson.M) ([]*model.Task, error)
	FindByID(ctx context.Context, taskID string) (*model.Task, error)
	Update(ctx context.Context, taskID string, set bson.M) (*model.Task, error)
	Delete(ctx context.Context, taskID string) error
}

// ProjectCounter keeps the denormalized task counters on projects current.
type ProjectCounter interface {
	FindByID(ctx context.Context, projectID string) (*model.Project, error)
	AdjustTaskCounts(ctx context.Context, projectID string, totalDelta, completedDelta int) error
}

type TaskService struct {
	Tasks    TaskStore
	Projects ProjectCounter
}

// ListVisible returns the tasks the caller may see, newest first.
func (svc *TaskService) ListVisible(ctx context.Context, caller *model.User, projectID string) ([]*model.Task, error) {
	base := bson.M{}
	if projectID != "" {
		base["project_id"] = projectID
	}

	tasks, err := svc.Tasks.List(ctx, TaskScope(caller.Role, caller.UserID, base))
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*model.Task{}
	}
	return tasks, nil
}

func (svc *TaskService) Get(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := svc.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (svc *TaskService) Create(ctx context.Context, creator *model.User, req dto.CreateTaskRequest) (*model.Task, error) {
	project, err := svc.Projects.FindByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	status := model.TaskTodo
	if req.Status != "" {
		status = model.TaskStatus(req.Status)
	}

	task := &model.Task{
		TaskID:      utils.GenerateID(),
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   creator.UserID,
		Status:      status,
		Deadline:    req.Deadline,
	}

	if err := svc.Tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	completedDelta := 0
	if task.Status == model.TaskCompleted {
		completedDelta = 1
	}
	if err := svc.Projects.AdjustTaskCounts(ctx, task.ProjectID, 1, completedDelta); err != nil {
		return nil, err
	}

	return task, nil
}

// Update applies the supplied fields. A Team Lead may only touch tasks they
// created; Admins may touch any task.
func (svc *TaskService) Update(ctx context.Context, caller *model.User, taskID string, req dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := svc.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if caller.Role.Is(model.RoleTeamLead) && task.CreatedBy != caller.UserID {
		return nil, ErrForbidden
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.AssignedTo != nil {
		set["assigned_to"] = *req.AssignedTo
	}
	if req.Status != nil {
		set["status"] = model.TaskStatus(*req.Status)
	}
	if req.Deadline != nil {
		set["deadline"] = *req.Deadline
	}
	if len(set) == 0 {
		return task, nil
	}

	updated, err := svc.Tasks.Update(ctx, taskID, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	// Keep the project's completed counter in step with status transitions.
	if req.Status != nil && updated.Status != task.Status {
		delta := 0
		if updated.Status == model.TaskCompleted {
			delta = 1
		} else if task.Status == model.TaskCompleted {
			delta = -1
		}
		if delta != 0 {
			if err := svc.Projects.AdjustTaskCounts(ctx, updated.ProjectID, 0, delta); err != nil {
				return nil, err
			}
		}
	}

	return updated, nil
}

// Delete removes a task. Same creator rule as Update.
func (svc *TaskService) Delete(ctx context.Context, caller *model.User, taskID string) (*model.Task, error) {
	task, err := svc.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if caller.Role.Is(model.RoleTeamLead) && task.CreatedBy != caller.UserID {
		return nil, ErrForbidden
	}

	if err := svc.Tasks.Delete(ctx, taskID); err != nil {
		return nil, err
	}

	completedDelta := 0
	if task.Status == model.TaskCompleted {
		completedDelta = -1
	}
	if err := svc.Projects.AdjustTaskCounts(ctx, task.ProjectID, -1, completedDelta); err != nil {
		return nil, err
	}

	return task, nil
}
