// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package responses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/survey-relay/cache"
	"github.com/danielhkuo/survey-relay/envelope"
	"github.com/danielhkuo/survey-relay/models"
	"github.com/danielhkuo/survey-relay/testutil"
)

func newService(backend *testutil.FakeBackend) *Service {
	store := testutil.SurveyStoreOf(testutil.SampleSurvey())
	return NewService(backend, store, cache.New(), nil)
}

func listPayload(items ...map[string]any) any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func TestList_LazyBackgroundLoad(t *testing.T) {
	backend := &testutil.FakeBackend{ListPayload: listPayload(
		map[string]any{"id": "r1", "submitted_at": "2025-03-01T10:00:00Z"},
		map[string]any{"id": "r2", "submitted_at": "2025-03-02T10:00:00Z"},
	)}
	svc := newService(backend)
	ctx := context.Background()

	// First read returns whatever is cached now, possibly nothing.
	svc.List(ctx, "s1")
	testutil.Eventually(t, time.Second, func() bool {
		return len(svc.List(ctx, "s1")) == 2
	})

	got := svc.List(ctx, "s1")
	if got[0].ID != "r2" || got[1].ID != "r1" {
		t.Errorf("Expected newest first [r2 r1], got %v", got)
	}
}

func TestList_LoadsOnlyOnce(t *testing.T) {
	backend := &testutil.FakeBackend{ListPayload: listPayload(map[string]any{"id": "r1"})}
	svc := newService(backend)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.List(ctx, "s1")
	}
	svc.Wait()
	svc.List(ctx, "s1")
	svc.Wait()

	if list, _, _ := backend.Calls(); list != 1 {
		t.Errorf("Expected a single backend fetch, got %d", list)
	}
}

func TestList_FailureRollsBackMarker(t *testing.T) {
	backend := &testutil.FakeBackend{ListErr: errors.New("boom")}
	svc := newService(backend)
	ctx := context.Background()

	svc.List(ctx, "s1")
	svc.Wait()
	if n := len(svc.List(ctx, "s1")); n != 0 {
		t.Fatalf("Expected empty cache after failed load, got %d records", n)
	}
	svc.Wait()

	// The failed attempt must not pin the marker; a later read retries.
	backend.SetList(listPayload(map[string]any{"id": "r1"}), nil)
	svc.List(ctx, "s1")
	svc.Wait()
	if n := len(svc.List(ctx, "s1")); n != 1 {
		t.Errorf("Expected retry to populate the cache, got %d records", n)
	}
}

func TestList_EmptyRefreshKeepsRecords(t *testing.T) {
	backend := &testutil.FakeBackend{ListPayload: listPayload(map[string]any{"id": "r1"})}
	svc := newService(backend)
	ctx := context.Background()

	svc.List(ctx, "s1")
	svc.Wait()

	// A refresh that comes back empty means "no data", not "delete everything".
	backend.SetList([]any{}, nil)
	svc.Submit(ctx, "s1", map[string]any{"q1": "hi"})
	svc.Wait()

	recs := svc.List(ctx, "s1")
	found := false
	for _, r := range recs {
		if r.ID == "r1" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected r1 to survive empty refresh, got %v", recs)
	}
}

func TestGet_UnknownIDTriggersListLoad(t *testing.T) {
	backend := &testutil.FakeBackend{ListPayload: listPayload(map[string]any{"id": "r1"})}
	svc := newService(backend)
	ctx := context.Background()

	if _, ok := svc.Get(ctx, "s1", "r1"); ok {
		t.Fatal("Expected miss before load")
	}
	svc.Wait()
	if _, ok := svc.Get(ctx, "s1", "r1"); !ok {
		t.Error("Expected hit after the triggered load landed")
	}
}

func TestGet_AnswerlessRecordFetchesDetail(t *testing.T) {
	backend := &testutil.FakeBackend{
		ListPayload: listPayload(map[string]any{"id": "r1"}),
		DetailPayload: map[string]any{
			"id":      "r1",
			"answers": []any{map[string]any{"question_id": "q1", "value_text": "hello"}},
		},
	}
	svc := newService(backend)
	ctx := context.Background()

	svc.List(ctx, "s1")
	svc.Wait()

	rec, ok := svc.Get(ctx, "s1", "r1")
	if !ok {
		t.Fatal("Expected cached record")
	}
	if rec.HasAnswers() {
		t.Fatal("Expected answerless record before the detail fetch")
	}
	svc.Wait()

	rec, _ = svc.Get(ctx, "s1", "r1")
	if rec.Answers["q1"].Text != "hello" {
		t.Errorf("Expected detail answers merged in, got %+v", rec.Answers)
	}
}

func TestGet_DetailFailureFallsBackToList(t *testing.T) {
	backend := &testutil.FakeBackend{
		ListPayload: listPayload(map[string]any{"id": "r1"}),
		DetailErr:   errors.New("404"),
	}
	svc := newService(backend)
	ctx := context.Background()

	svc.List(ctx, "s1")
	svc.Wait()
	svc.Get(ctx, "s1", "r1")
	svc.Wait()

	if list, detail, _ := backend.Calls(); detail != 1 || list < 2 {
		t.Errorf("Expected detail attempt then list fallback, got list=%d detail=%d", list, detail)
	}
}

func TestSubmit_OptimisticInsert(t *testing.T) {
	backend := &testutil.FakeBackend{}
	svc := newService(backend)
	ctx := context.Background()

	rec, err := svc.Submit(ctx, "s1", map[string]any{"q1": "hello", "q3": []any{"m1", "m2"}})
	if err != nil {
		t.Fatalf("Expected submit to succeed, got %v", err)
	}
	// No echo id, so the record carries a placeholder.
	if !envelope.IsPlaceholderID(rec.ID) {
		t.Errorf("Expected placeholder id, got %q", rec.ID)
	}
	// Echo carried no answers either; the client input backfills them.
	if rec.Answers["q1"].Text != "hello" {
		t.Errorf("Expected client answers on the record, got %+v", rec.Answers)
	}

	cached, ok := svc.Get(ctx, "s1", rec.ID)
	if !ok || !cached.HasAnswers() {
		t.Error("Expected the record cached with answers before the refresh")
	}

	if backend.LastPayload.Answers[0].QuestionID != "q1" || backend.LastPayload.Answers[0].ValueText != "hello" {
		t.Errorf("Expected wire payload for q1, got %+v", backend.LastPayload)
	}
	svc.Wait()
	if list, _, submit := backend.Calls(); submit != 1 || list != 1 {
		t.Errorf("Expected one submit and one background refresh, got list=%d submit=%d", list, submit)
	}
}

func TestSubmit_UsesEchoRecord(t *testing.T) {
	backend := &testutil.FakeBackend{SubmitEcho: map[string]any{
		"response_id":  "r99",
		"submitted_at": "2025-03-05T08:00:00Z",
		"answers":      []any{map[string]any{"question_id": "q1", "value_text": "from echo"}},
	}}
	svc := newService(backend)

	rec, err := svc.Submit(context.Background(), "s1", map[string]any{"q1": "from client"})
	if err != nil {
		t.Fatalf("Expected submit to succeed, got %v", err)
	}
	if rec.ID != "r99" {
		t.Errorf("Expected backend-assigned id, got %q", rec.ID)
	}
	if rec.Answers["q1"].Text != "from echo" {
		t.Errorf("Expected echo answers to win, got %+v", rec.Answers)
	}
	svc.Wait()
}

func TestSubmit_TransportErrorPropagates(t *testing.T) {
	backend := &testutil.FakeBackend{SubmitErr: errors.New("backend down")}
	svc := newService(backend)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "s1", map[string]any{"q1": "hi"})
	if err == nil || err.Error() != "backend down" {
		t.Fatalf("Expected transport error, got %v", err)
	}
	svc.Wait()
	// Nothing optimistic on failure.
	for _, r := range svc.List(ctx, "s1") {
		if envelope.IsPlaceholderID(r.ID) {
			t.Errorf("Expected no optimistic record, found %q", r.ID)
		}
	}
}

func TestSubmit_RejectsBeforeTransport(t *testing.T) {
	closed := testutil.SampleSurvey()
	closed.ID = "s2"
	closed.Active = false

	backend := &testutil.FakeBackend{}
	store := testutil.SurveyStoreOf(testutil.SampleSurvey(), closed)
	svc := NewService(backend, store, cache.New(), nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		surveyID string
		answers  map[string]any
		check    func(error) bool
	}{
		{"unknown survey", "nope", map[string]any{"q1": "hi"}, func(err error) bool {
			return errors.Is(err, models.ErrSurveyNotFound)
		}},
		{"closed survey", "s2", map[string]any{"q1": "hi"}, func(err error) bool {
			return errors.Is(err, models.ErrSurveyClosed)
		}},
		{"missing required", "s1", map[string]any{}, func(err error) bool {
			_, ok := models.IsValidation(err)
			return ok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.surveyID, tt.answers)
			if !tt.check(err) {
				t.Errorf("Expected matching error, got %v", err)
			}
		})
	}
	svc.Wait()
	if _, _, submit := backend.Calls(); submit != 0 {
		t.Errorf("Expected no backend call for rejected submits, got %d", submit)
	}
}

func TestReport_BuildsFromCachedRecords(t *testing.T) {
	backend := &testutil.FakeBackend{ListPayload: listPayload(
		map[string]any{"id": "r1", "answers": []any{map[string]any{"question_id": "q2", "option_id": "o1"}}},
		map[string]any{"id": "r2", "answers": []any{map[string]any{"question_id": "q2", "option_id": "o1"}}},
	)}
	svc := newService(backend)
	ctx := context.Background()

	svc.List(ctx, "s1")
	svc.Wait()

	rep, err := svc.Report(ctx, "s1")
	if err != nil {
		t.Fatalf("Expected report, got %v", err)
	}
	if rep.Summary.TotalResponses != 2 {
		t.Errorf("Expected 2 responses, got %d", rep.Summary.TotalResponses)
	}

	if _, err := svc.Report(ctx, "nope"); !errors.Is(err, models.ErrSurveyNotFound) {
		t.Errorf("Expected ErrSurveyNotFound, got %v", err)
	}
}

func TestInvalidate_DropsAndReloads(t *testing.T) {
	backend := &testutil.FakeBackend{ListPayload: listPayload(map[string]any{"id": "r1"})}
	svc := newService(backend)
	ctx := context.Background()

	svc.List(ctx, "s1")
	svc.Wait()
	svc.Invalidate("s1")
	if n := len(svc.cache.Records("s1")); n != 0 {
		t.Fatalf("Expected empty cache, got %d records", n)
	}

	svc.List(ctx, "s1")
	svc.Wait()
	if n := len(svc.List(ctx, "s1")); n != 1 {
		t.Errorf("Expected reload after invalidation, got %d records", n)
	}
}

func TestInvalidate_CascadesToSchemaStore(t *testing.T) {
	backend := &testutil.FakeBackend{}
	store := testutil.SurveyStoreOf(testutil.SampleSurvey())
	svc := NewService(backend, store, cache.New(), nil)

	svc.Invalidate("s1")

	ids := store.InvalidatedIDs()
	if len(ids) != 1 || ids[0] != "s1" {
		t.Fatalf("Expected schema store invalidation for s1, got %v", ids)
	}
	// The stale schema must not keep serving validation for a dead survey.
	if _, err := store.GetByID(context.Background(), "s1"); !errors.Is(err, models.ErrSurveyNotFound) {
		t.Errorf("Expected schema gone after invalidation, got %v", err)
	}
}

func TestRestore_SeedsWithoutMarkingLoaded(t *testing.T) {
	backend := &testutil.FakeBackend{ListPayload: listPayload(map[string]any{"id": "r2"})}
	svc := newService(backend)
	ctx := context.Background()

	svc.Restore(map[string][]models.ResponseRecord{
		"s1": {{ID: "r1", SurveyID: "s1", SubmittedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}},
	})
	if _, ok := svc.Get(ctx, "s1", "r1"); !ok {
		t.Fatal("Expected restored record")
	}

	// The first real read still refreshes from the backend and unions in.
	svc.Wait()
	testutil.Eventually(t, time.Second, func() bool {
		return len(svc.List(ctx, "s1")) == 2
	})
}
