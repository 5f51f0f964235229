package repository

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func testParams(notes string) LogWorkParams {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
	return LogWorkParams{
		UserID:    "u1",
		ProjectID: "p1",
		TaskID:    "t1",
		StartDate: day.Add(9 * time.Hour),
		EndDate:   day.Add(17 * time.Hour),
		Durations: []int{30, 45},
		Notes:     notes,
		Day:       day,
	}
}

func TestLogWorkFilterKeysOnDay(t *testing.T) {
	p := testParams("")
	got := logWorkFilter(p)

	want := bson.M{
		"user_id":    "u1",
		"project_id": "p1",
		"task_id":    "t1",
		"date":       p.Day,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("logWorkFilter = %v, want %v", got, want)
	}
}

func TestLogWorkUpdateShape(t *testing.T) {
	p := testParams("worked on schema")
	now := time.Now()
	got := logWorkUpdate(p, "candidate-id", now)

	push, ok := got["$push"].(bson.M)
	if !ok {
		t.Fatal("Expected a $push stage")
	}
	if !reflect.DeepEqual(push["durations"], bson.M{"$each": []int{30, 45}}) {
		t.Errorf("$push durations = %v", push["durations"])
	}

	set, ok := got["$set"].(bson.M)
	if !ok {
		t.Fatal("Expected a $set stage")
	}
	if set["end_date"] != p.EndDate {
		t.Errorf("$set end_date = %v, want %v", set["end_date"], p.EndDate)
	}
	if set["notes"] != "worked on schema" {
		t.Errorf("$set notes = %v", set["notes"])
	}

	insert, ok := got["$setOnInsert"].(bson.M)
	if !ok {
		t.Fatal("Expected a $setOnInsert stage")
	}
	if insert["worklog_id"] != "candidate-id" {
		t.Errorf("$setOnInsert worklog_id = %v", insert["worklog_id"])
	}
	if insert["start_date"] != p.StartDate {
		t.Error("start_date must only be written on insert")
	}
	if _, exists := set["start_date"]; exists {
		t.Error("start_date must never appear in $set")
	}
}

func TestLogWorkUpdateOmitsEmptyNotes(t *testing.T) {
	p := testParams("")
	got := logWorkUpdate(p, "candidate-id", time.Now())

	set := got["$set"].(bson.M)
	if _, exists := set["notes"]; exists {
		t.Error("Empty notes must not overwrite the stored notes")
	}
}
