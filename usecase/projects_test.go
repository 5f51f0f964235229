package usecase

import (
	"context"
	"errors"
	"testing"

	"main/dto"
	"main/model"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeProjectStore struct {
	projects map[string]*model.Project
	deleted  []string
}

func newFakeProjectStore(projects ...*model.Project) *fakeProjectStore {
	store := &fakeProjectStore{projects: map[string]*model.Project{}}
	for _, p := range projects {
		store.projects[p.ProjectID] = p
	}
	return store
}

func (f *fakeProjectStore) Insert(_ context.Context, project *model.Project) error {
	f.projects[project.ProjectID] = project
	return nil
}

func (f *fakeProjectStore) List(_ context.Context, filter bson.M, page, limit int) ([]*model.Project, int64, error) {
	var out []*model.Project
	for _, p := range f.projects {
		if creator, ok := filter["created_by"].(string); ok && p.CreatedBy != creator {
			continue
		}
		if member, ok := filter["team_members"].(string); ok && !contains(p.TeamMembers, member) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProjectStore) FindByID(_ context.Context, projectID string) (*model.Project, error) {
	return f.projects[projectID], nil
}

func (f *fakeProjectStore) Update(_ context.Context, projectID string, set bson.M) (*model.Project, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return nil, nil
	}
	if name, ok := set["name"].(string); ok {
		p.Name = name
	}
	if status, ok := set["status"].(model.ProjectStatus); ok {
		p.Status = status
	}
	return p, nil
}

func (f *fakeProjectStore) Delete(_ context.Context, projectID string) error {
	delete(f.projects, projectID)
	f.deleted = append(f.deleted, projectID)
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func TestProjectUpdateCreatorRule(t *testing.T) {
	store := newFakeProjectStore(&model.Project{ProjectID: "p1", Name: "Alpha", CreatedBy: "lead-a"})
	svc := &ProjectService{Projects: store}
	ctx := context.Background()

	name := "Renamed"
	req := dto.UpdateProjectRequest{Name: &name}

	otherLead := &model.User{UserID: "lead-b", Role: model.RoleTeamLead}
	if _, err := svc.Update(ctx, otherLead, "p1", req); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-creator team lead, got %v", err)
	}

	creator := &model.User{UserID: "lead-a", Role: model.RoleTeamLead}
	updated, err := svc.Update(ctx, creator, "p1", req)
	if err != nil {
		t.Fatalf("Creator update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Name = %q, want %q", updated.Name, "Renamed")
	}

	admin := &model.User{UserID: "admin", Role: model.RoleAdmin}
	if _, err := svc.Update(ctx, admin, "p1", req); err != nil {
		t.Errorf("Admin should update any project, got %v", err)
	}
}

func TestProjectDeleteCreatorRule(t *testing.T) {
	store := newFakeProjectStore(&model.Project{ProjectID: "p1", CreatedBy: "lead-a"})
	svc := &ProjectService{Projects: store}
	ctx := context.Background()

	otherLead := &model.User{UserID: "lead-b", Role: model.RoleTeamLead}
	if _, err := svc.Delete(ctx, otherLead, "p1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Error("Project was deleted by a non-creator")
	}

	creator := &model.User{UserID: "lead-a", Role: model.RoleTeamLead}
	if _, err := svc.Delete(ctx, creator, "p1"); err != nil {
		t.Fatalf("Creator delete failed: %v", err)
	}
	if len(store.deleted) != 1 {
		t.Error("Expected project to be deleted")
	}
}

func TestProjectListVisibleScoping(t *testing.T) {
	store := newFakeProjectStore(
		&model.Project{ProjectID: "p1", CreatedBy: "lead-a", TeamMembers: []string{"emp"}},
		&model.Project{ProjectID: "p2", CreatedBy: "lead-b"},
	)
	svc := &ProjectService{Projects: store}
	ctx := context.Background()

	employee := &model.User{UserID: "emp", Role: model.RoleEmployee}
	result, err := svc.ListVisible(ctx, employee, ProjectListOptions{})
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("Employee total = %d, want 1", result.Total)
	}

	lead := &model.User{UserID: "lead-b", Role: model.RoleTeamLead}
	result, err = svc.ListVisible(ctx, lead, ProjectListOptions{})
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if result.Total != 1 || result.Projects[0].ProjectID != "p2" {
		t.Errorf("Team lead should see only own projects, got %v", result.Projects)
	}

	admin := &model.User{UserID: "admin", Role: model.RoleAdmin}
	result, err = svc.ListVisible(ctx, admin, ProjectListOptions{})
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Admin total = %d, want 2", result.Total)
	}
}

func TestProjectGetMissing(t *testing.T) {
	svc := &ProjectService{Projects: newFakeProjectStore()}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
