package usecase

import (
	"context"
	"math"

	"main/dto"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ProjectStore is the slice of the project repository the service uses.
type ProjectStore interface {
	Insert(ctx context.Context, project *model.Project) error
	List(ctx context.Context, filter bson.M, page, limit int) ([]*model.Project, int64, error)
	FindByID(ctx context.Context, projectID string) (*model.Project, error)
	Update(ctx context.Context, projectID string, set bson.M) (*model.Project, error)
	Delete(ctx context.Context, projectID string) error
}

type ProjectService struct {
	Projects ProjectStore
}

type ProjectListOptions struct {
	Status    string
	CreatedBy string
	Page      int
	Limit     int
}

// ListVisible returns the caller's page of projects. The role scope is applied
// before pagination so totals count only what the caller can see.
func (svc *ProjectService) ListVisible(ctx context.Context, caller *model.User, opts ProjectListOptions) (*dto.ProjectListResponse, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	base := bson.M{}
	if opts.Status != "" {
		base["status"] = opts.Status
	}
	if opts.CreatedBy != "" {
		base["created_by"] = opts.CreatedBy
	}

	filter := ProjectScope(caller.Role, caller.UserID, base)
	projects, total, err := svc.Projects.List(ctx, filter, opts.Page, opts.Limit)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []*model.Project{}
	}

	return &dto.ProjectListResponse{
		Projects:    projects,
		TotalPages:  int(math.Ceil(float64(total) / float64(opts.Limit))),
		CurrentPage: opts.Page,
		Total:       total,
	}, nil
}

func (svc *ProjectService) Get(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := svc.Projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (svc *ProjectService) Create(ctx context.Context, creator *model.User, req dto.CreateProjectRequest) (*model.Project, error) {
	status := model.ProjectActive
	if req.Status != "" {
		status = model.ProjectStatus(req.Status)
	}

	project := &model.Project{
		ProjectID:        utils.GenerateID(),
		Name:             req.Name,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Status:           status,
		CreatedBy:        creator.UserID,
		TeamLeads:        req.TeamLeads,
		TeamCoordinators: req.TeamCoordinators,
		TeamMembers:      req.TeamMembers,
	}

	if err := svc.Projects.Insert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies the supplied fields. A Team Lead may only touch projects
// they created; Admins may touch any project.
func (svc *ProjectService) Update(ctx context.Context, caller *model.User, projectID string, req dto.UpdateProjectRequest) (*model.Project, error) {
	project, err := svc.Projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if caller.Role.Is(model.RoleTeamLead) && project.CreatedBy != caller.UserID {
		return nil, ErrForbidden
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.StartDate != nil {
		set["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		set["end_date"] = *req.EndDate
	}
	if req.Status != nil {
		set["status"] = model.ProjectStatus(*req.Status)
	}
	if req.TeamLeads != nil {
		set["team_leads"] = req.TeamLeads
	}
	if req.TeamCoordinators != nil {
		set["team_coordinators"] = req.TeamCoordinators
	}
	if req.TeamMembers != nil {
		set["team_members"] = req.TeamMembers
	}
	if len(set) == 0 {
		return project, nil
	}

	updated, err := svc.Projects.Update(ctx, projectID, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Delete removes a project. Same creator rule as Update.
func (svc *ProjectService) Delete(ctx context.Context, caller *model.User, projectID string) (*model.Project, error) {
	project, err := svc.Projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if caller.Role.Is(model.RoleTeamLead) && project.CreatedBy != caller.UserID {
		return nil, ErrForbidden
	}

	if err := svc.Projects.Delete(ctx, projectID); err != nil {
		return nil, err
	}
	return project, nil
}
