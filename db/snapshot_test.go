// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/survey-relay/models"
)

func openTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("Failed to open snapshot: %v", err)
	}
	t.Cleanup(func() { snap.Close() })
	return snap
}

func TestSnapshot_Roundtrip(t *testing.T) {
	snap := openTestSnapshot(t)
	at := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	recs := []models.ResponseRecord{
		{ID: "r1", SurveyID: "s1", SubmittedAt: at, Answers: models.AnswerMap{
			"q1": {Text: "hello"},
			"q3": {OptionIDs: []string{"m1", "m2"}},
		}},
		{ID: "r2", SurveyID: "s1", SubmittedAt: at.Add(time.Hour)},
	}

	if err := snap.SaveRecords("s1", recs); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	got, err := snap.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	list := got["s1"]
	if len(list) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(list))
	}

	var r1 models.ResponseRecord
	for _, r := range list {
		if r.ID == "r1" {
			r1 = r
		}
	}
	if r1.ID != "r1" || !r1.SubmittedAt.Equal(at) {
		t.Errorf("Expected r1 with original timestamp, got %+v", r1)
	}
	if r1.Answers["q1"].Text != "hello" {
		t.Errorf("Expected answers restored, got %+v", r1.Answers)
	}
	if len(r1.Answers["q3"].OptionIDs) != 2 {
		t.Errorf("Expected option ids restored, got %+v", r1.Answers["q3"])
	}
}

func TestSnapshot_AnswerlessRecordStaysAnswerless(t *testing.T) {
	snap := openTestSnapshot(t)
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := snap.SaveRecords("s1", []models.ResponseRecord{{ID: "r1", SurveyID: "s1", SubmittedAt: at}}); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	got, err := snap.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if got["s1"][0].Answers != nil {
		t.Errorf("Expected nil answers, got %+v", got["s1"][0].Answers)
	}
}

func TestSnapshot_SaveReplacesPriorSet(t *testing.T) {
	snap := openTestSnapshot(t)
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	snap.SaveRecords("s1", []models.ResponseRecord{
		{ID: "r1", SurveyID: "s1", SubmittedAt: at},
		{ID: "r2", SurveyID: "s1", SubmittedAt: at},
	})
	snap.SaveRecords("s1", []models.ResponseRecord{
		{ID: "r3", SurveyID: "s1", SubmittedAt: at},
	})

	got, _ := snap.LoadAll()
	if len(got["s1"]) != 1 || got["s1"][0].ID != "r3" {
		t.Errorf("Expected only the replacement set, got %+v", got["s1"])
	}
}

func TestSnapshot_SurveysAreIsolated(t *testing.T) {
	snap := openTestSnapshot(t)
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	snap.SaveRecords("s1", []models.ResponseRecord{{ID: "r1", SurveyID: "s1", SubmittedAt: at}})
	snap.SaveRecords("s2", []models.ResponseRecord{{ID: "r2", SurveyID: "s2", SubmittedAt: at}})

	if err := snap.DeleteSurvey("s1"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	got, _ := snap.LoadAll()
	if len(got["s1"]) != 0 {
		t.Errorf("Expected s1 gone, got %+v", got["s1"])
	}
	if len(got["s2"]) != 1 {
		t.Errorf("Expected s2 untouched, got %+v", got["s2"])
	}
}

func TestSnapshot_EmptyDatabase(t *testing.T) {
	snap := openTestSnapshot(t)
	got, err := snap.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty map, got %+v", got)
	}
}

func TestSnapshot_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	snap, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	snap.SaveRecords("s1", []models.ResponseRecord{{ID: "r1", SurveyID: "s1", SubmittedAt: at}})
	snap.Close()

	again, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	defer again.Close()
	got, _ := again.LoadAll()
	if len(got["s1"]) != 1 {
		t.Errorf("Expected persisted record after reopen, got %+v", got)
	}
}
