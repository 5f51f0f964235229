package usecase

import (
	"context"
	"errors"
	"testing"

	"main/dto"
	"main/model"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeTaskStore struct {
	tasks   map[string]*model.Task
	deleted []string
}

func newFakeTaskStore(tasks ...*model.Task) *fakeTaskStore {
	store := &fakeTaskStore{tasks: map[string]*model.Task{}}
	for _, task := range tasks {
		store.tasks[task.TaskID] = task
	}
	return store
}

func (f *fakeTaskStore) Insert(_ context.Context, task *model.Task) error {
	f.tasks[task.TaskID] = task
	return nil
}

func (f *fakeTaskStore) List(_ context.Context, filter bson.M) ([]*model.Task, error) {
	var out []*model.Task
	for _, task := range f.tasks {
		if assignee, ok := filter["assigned_to"].(string); ok && task.AssignedTo != assignee {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (f *fakeTaskStore) FindByID(_ context.Context, taskID string) (*model.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, nil
	}
	found := *task
	return &found, nil
}

func (f *fakeTaskStore) Update(_ context.Context, taskID string, set bson.M) (*model.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, nil
	}
	if title, ok := set["title"].(string); ok {
		task.Title = title
	}
	if status, ok := set["status"].(model.TaskStatus); ok {
		task.Status = status
	}
	return task, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, taskID string) error {
	delete(f.tasks, taskID)
	f.deleted = append(f.deleted, taskID)
	return nil
}

type fakeProjectCounter struct {
	projects       map[string]*model.Project
	totalDelta     int
	completedDelta int
}

func (f *fakeProjectCounter) FindByID(_ context.Context, projectID string) (*model.Project, error) {
	return f.projects[projectID], nil
}

func (f *fakeProjectCounter) AdjustTaskCounts(_ context.Context, _ string, totalDelta, completedDelta int) error {
	f.totalDelta += totalDelta
	f.completedDelta += completedDelta
	return nil
}

func newTaskService(tasks *fakeTaskStore) (*TaskService, *fakeProjectCounter) {
	counter := &fakeProjectCounter{projects: map[string]*model.Project{
		"p1": {ProjectID: "p1"},
	}}
	return &TaskService{Tasks: tasks, Projects: counter}, counter
}

func TestTaskUpdateCreatorRule(t *testing.T) {
	store := newFakeTaskStore(&model.Task{
		TaskID: "t1", Title: "Schema", ProjectID: "p1",
		CreatedBy: "lead-a", Status: model.TaskTodo,
	})
	svc, _ := newTaskService(store)
	ctx := context.Background()

	title := "Renamed"
	req := dto.UpdateTaskRequest{Title: &title}

	otherLead := &model.User{UserID: "lead-b", Role: model.RoleTeamLead}
	if _, err := svc.Update(ctx, otherLead, "t1", req); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-creator team lead, got %v", err)
	}
	if store.tasks["t1"].Title != "Schema" {
		t.Errorf("Task was modified by a non-creator: %q", store.tasks["t1"].Title)
	}

	creator := &model.User{UserID: "lead-a", Role: model.RoleTeamLead}
	updated, err := svc.Update(ctx, creator, "t1", req)
	if err != nil {
		t.Fatalf("Creator update failed: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("Title = %q, want %q", updated.Title, "Renamed")
	}

	admin := &model.User{UserID: "admin", Role: model.RoleAdmin}
	if _, err := svc.Update(ctx, admin, "t1", req); err != nil {
		t.Errorf("Admin should update any task, got %v", err)
	}
}

func TestTaskDeleteCreatorRule(t *testing.T) {
	store := newFakeTaskStore(&model.Task{
		TaskID: "t1", ProjectID: "p1", CreatedBy: "lead-a", Status: model.TaskTodo,
	})
	svc, _ := newTaskService(store)
	ctx := context.Background()

	otherLead := &model.User{UserID: "lead-b", Role: model.RoleTeamLead}
	if _, err := svc.Delete(ctx, otherLead, "t1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Error("Task was deleted by a non-creator")
	}

	creator := &model.User{UserID: "lead-a", Role: model.RoleTeamLead}
	if _, err := svc.Delete(ctx, creator, "t1"); err != nil {
		t.Fatalf("Creator delete failed: %v", err)
	}
	if len(store.deleted) != 1 {
		t.Error("Expected task to be deleted")
	}
}

func TestTaskStatusTransitionCounters(t *testing.T) {
	store := newFakeTaskStore(&model.Task{
		TaskID: "t1", ProjectID: "p1", CreatedBy: "lead-a", Status: model.TaskTodo,
	})
	svc, counter := newTaskService(store)
	ctx := context.Background()
	creator := &model.User{UserID: "lead-a", Role: model.RoleTeamLead}

	completed := string(model.TaskCompleted)
	if _, err := svc.Update(ctx, creator, "t1", dto.UpdateTaskRequest{Status: &completed}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if counter.completedDelta != 1 {
		t.Errorf("completedDelta = %d, want 1 after completion", counter.completedDelta)
	}

	todo := string(model.TaskTodo)
	if _, err := svc.Update(ctx, creator, "t1", dto.UpdateTaskRequest{Status: &todo}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if counter.completedDelta != 0 {
		t.Errorf("completedDelta = %d, want 0 after reopening", counter.completedDelta)
	}

	if _, err := svc.Delete(ctx, creator, "t1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if counter.totalDelta != -1 {
		t.Errorf("totalDelta = %d, want -1 after delete", counter.totalDelta)
	}
}

func TestTaskUpdateMissing(t *testing.T) {
	svc, _ := newTaskService(newFakeTaskStore())
	admin := &model.User{UserID: "admin", Role: model.RoleAdmin}
	if _, err := svc.Update(context.Background(), admin, "missing", dto.UpdateTaskRequest{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
