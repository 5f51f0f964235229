package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"main/dto"
	"main/model"
	"main/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeWorklogStore mimics the repository's create-or-accumulate contract with
// an in-memory map keyed the same way the Mongo upsert is.
type fakeWorklogStore struct {
	logs   map[string]*model.Worklog
	nextID int
}

func newFakeWorklogStore() *fakeWorklogStore {
	return &fakeWorklogStore{logs: map[string]*model.Worklog{}}
}

func dayKey(userID, projectID, taskID string, day time.Time) string {
	return userID + "|" + projectID + "|" + taskID + "|" + day.Format("2006-01-02")
}

func (f *fakeWorklogStore) LogWork(_ context.Context, p repository.LogWorkParams) (*model.Worklog, bool, error) {
	key := dayKey(p.UserID, p.ProjectID, p.TaskID, p.Day)
	if existing, ok := f.logs[key]; ok {
		existing.Durations = append(existing.Durations, p.Durations...)
		existing.EndDate = p.EndDate
		if p.Notes != "" {
			existing.Notes = p.Notes
		}
		return existing, false, nil
	}

	f.nextID++
	entry := &model.Worklog{
		WorklogID: string(rune('a' + f.nextID)),
		UserID:    p.UserID,
		ProjectID: p.ProjectID,
		TaskID:    p.TaskID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Durations: append([]int{}, p.Durations...),
		Date:      p.Day,
		Notes:     p.Notes,
	}
	f.logs[key] = entry
	return entry, true, nil
}

func (f *fakeWorklogStore) FindByID(_ context.Context, worklogID string) (*model.Worklog, error) {
	for _, entry := range f.logs {
		if entry.WorklogID == worklogID {
			return entry, nil
		}
	}
	return nil, nil
}

func (f *fakeWorklogStore) AppendSession(_ context.Context, worklogID string, duration *int, endDate *time.Time, notes *string) (*model.Worklog, error) {
	for _, entry := range f.logs {
		if entry.WorklogID != worklogID {
			continue
		}
		if duration != nil {
			entry.Durations = append(entry.Durations, *duration)
		}
		if endDate != nil {
			entry.EndDate = *endDate
		}
		if notes != nil {
			entry.Notes = *notes
		}
		return entry, nil
	}
	return nil, nil
}

func (f *fakeWorklogStore) List(_ context.Context, filter bson.M) ([]*model.Worklog, error) {
	var out []*model.Worklog
	for _, entry := range f.logs {
		if userID, ok := filter["user_id"].(string); ok && entry.UserID != userID {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

type fakeTeamDirectory struct {
	members map[string][]string
}

func (f *fakeTeamDirectory) FindTeamMemberIDs(_ context.Context, leadID string) ([]string, error) {
	return f.members[leadID], nil
}

func logRequest(durations []int, notes string) dto.LogWorkRequest {
	now := time.Now()
	return dto.LogWorkRequest{
		ProjectID: "p1",
		TaskID:    "t1",
		StartDate: now,
		EndDate:   now.Add(time.Hour),
		Durations: durations,
		Notes:     notes,
	}
}

func TestLogWorkAccumulatesSameDay(t *testing.T) {
	store := newFakeWorklogStore()
	svc := &WorklogService{Worklogs: store, Users: &fakeTeamDirectory{}}
	ctx := context.Background()

	first, created, err := svc.LogWork(ctx, "emp", logRequest([]int{10}, "morning"))
	if err != nil {
		t.Fatalf("LogWork failed: %v", err)
	}
	if !created {
		t.Error("Expected first log of the day to create an entry")
	}

	second, created, err := svc.LogWork(ctx, "emp", logRequest([]int{15}, ""))
	if err != nil {
		t.Fatalf("LogWork failed: %v", err)
	}
	if created {
		t.Error("Expected second log of the day to accumulate, not create")
	}

	if second.WorklogID != first.WorklogID {
		t.Error("Expected both calls to land on the same entry")
	}
	if !reflect.DeepEqual(second.Durations, []int{10, 15}) {
		t.Errorf("Durations = %v, want [10 15]", second.Durations)
	}
	if second.Notes != "morning" {
		t.Errorf("Empty notes should not overwrite, got %q", second.Notes)
	}
	if len(store.logs) != 1 {
		t.Errorf("Expected exactly one document, got %d", len(store.logs))
	}
}

func TestLogWorkNotesOverwriteWhenSupplied(t *testing.T) {
	store := newFakeWorklogStore()
	svc := &WorklogService{Worklogs: store, Users: &fakeTeamDirectory{}}
	ctx := context.Background()

	if _, _, err := svc.LogWork(ctx, "emp", logRequest([]int{10}, "first")); err != nil {
		t.Fatalf("LogWork failed: %v", err)
	}
	entry, _, err := svc.LogWork(ctx, "emp", logRequest([]int{5}, "second"))
	if err != nil {
		t.Fatalf("LogWork failed: %v", err)
	}
	if entry.Notes != "second" {
		t.Errorf("Notes = %q, want %q", entry.Notes, "second")
	}
}

func TestUpdateWorklogOwnerOnly(t *testing.T) {
	store := newFakeWorklogStore()
	svc := &WorklogService{Worklogs: store, Users: &fakeTeamDirectory{}}
	ctx := context.Background()

	entry, _, err := svc.LogWork(ctx, "owner", logRequest([]int{30}, ""))
	if err != nil {
		t.Fatalf("LogWork failed: %v", err)
	}

	duration := 20
	_, err = svc.Update(ctx, "intruder", entry.WorklogID, dto.UpdateWorklogRequest{Duration: &duration})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for non-owner, got %v", err)
	}
	if !reflect.DeepEqual(entry.Durations, []int{30}) {
		t.Errorf("Log was modified by a non-owner: %v", entry.Durations)
	}

	updated, err := svc.Update(ctx, "owner", entry.WorklogID, dto.UpdateWorklogRequest{Duration: &duration})
	if err != nil {
		t.Fatalf("Owner update failed: %v", err)
	}
	if !reflect.DeepEqual(updated.Durations, []int{30, 20}) {
		t.Errorf("Durations = %v, want [30 20]", updated.Durations)
	}
}

func TestUpdateWorklogMissing(t *testing.T) {
	svc := &WorklogService{Worklogs: newFakeWorklogStore(), Users: &fakeTeamDirectory{}}

	_, err := svc.Update(context.Background(), "anyone", "missing", dto.UpdateWorklogRequest{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListVisibleByRole(t *testing.T) {
	store := newFakeWorklogStore()
	directory := &fakeTeamDirectory{members: map[string][]string{"lead": {"emp"}}}
	svc := &WorklogService{Worklogs: store, Users: directory}
	ctx := context.Background()

	if _, _, err := svc.LogWork(ctx, "emp", logRequest([]int{10}, "")); err != nil {
		t.Fatalf("LogWork failed: %v", err)
	}

	admin := &model.User{UserID: "admin", Role: model.RoleAdmin}
	logs, err := svc.ListVisible(ctx, admin)
	if err != nil {
		t.Fatalf("Admin listing failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("Admin should see all logs, got %d", len(logs))
	}

	employee := &model.User{UserID: "emp", Role: model.RoleEmployee}
	if _, err := svc.ListVisible(ctx, employee); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for plain employee, got %v", err)
	}
}
