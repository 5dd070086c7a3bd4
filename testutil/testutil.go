// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/survey-relay/models"
)

// SampleSurvey returns the standard three-question schema used across
// tests: a required open question, a single choice, and a multiple choice.
func SampleSurvey() *models.Survey {
	return &models.Survey{
		ID:     "s1",
		Title:  "Customer Satisfaction",
		Active: true,
		Questions: []models.Question{
			{ID: "q1", Text: "Any comments?", Type: models.TypeOpen, Required: true},
			{ID: "q2", Text: "Preferred color", Type: models.TypeSingle, Options: []models.Option{
				{ID: "o1", Text: "Red"},
				{ID: "o2", Text: "Blue"},
				{ID: "o3", Text: "Green"},
			}},
			{ID: "q3", Text: "Which channels do you use?", Type: models.TypeMultiple, Options: []models.Option{
				{ID: "m1", Text: "Email"},
				{ID: "m2", Text: "Phone"},
				{ID: "m3", Text: "Chat"},
			}},
		},
	}
}

// FakeBackend is an in-memory stand-in for the transport client. Fields
// set the canned payload or error per operation; call counts and the last
// submitted payload are recorded for assertions.
type FakeBackend struct {
	mu sync.Mutex

	ListPayload   any
	ListErr       error
	DetailPayload any
	DetailErr     error
	SubmitEcho    any
	SubmitErr     error

	CatalogPayload any
	CatalogErr     error
	SurveyDetail   any
	SurveyErr      error
	TypesPayload   any
	TypesErr       error

	ListCalls   int
	DetailCalls int
	SubmitCalls int
	TypesCalls  int
	LastPayload models.SubmissionPayload
}

func (f *FakeBackend) ListResponses(ctx context.Context, surveyID string, params url.Values) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	return f.ListPayload, f.ListErr
}

func (f *FakeBackend) GetResponseDetail(ctx context.Context, surveyID, responseID string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DetailCalls++
	return f.DetailPayload, f.DetailErr
}

func (f *FakeBackend) SubmitResponse(ctx context.Context, surveyID string, payload models.SubmissionPayload) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SubmitCalls++
	f.LastPayload = payload
	return f.SubmitEcho, f.SubmitErr
}

func (f *FakeBackend) ListSurveys(ctx context.Context) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CatalogPayload, f.CatalogErr
}

func (f *FakeBackend) GetSurveyDetail(ctx context.Context, surveyID string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SurveyDetail, f.SurveyErr
}

func (f *FakeBackend) QuestionTypes(ctx context.Context) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TypesCalls++
	return f.TypesPayload, f.TypesErr
}

// Calls returns the recorded call counts under the lock.
func (f *FakeBackend) Calls() (list, detail, submit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListCalls, f.DetailCalls, f.SubmitCalls
}

// SetList swaps the canned list payload under the lock.
func (f *FakeBackend) SetList(payload any, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListPayload = payload
	f.ListErr = err
}

// FakeSurveyStore serves schemas from a fixed map and records invalidations.
type FakeSurveyStore struct {
	mu          sync.Mutex
	Surveys     map[string]*models.Survey
	Invalidated []string
}

func (f *FakeSurveyStore) GetByID(ctx context.Context, surveyID string) (*models.Survey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sv, ok := f.Surveys[surveyID]; ok {
		return sv, nil
	}
	return nil, models.ErrSurveyNotFound
}

func (f *FakeSurveyStore) Invalidate(surveyID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Surveys, surveyID)
	f.Invalidated = append(f.Invalidated, surveyID)
}

// InvalidatedIDs returns the recorded invalidations under the lock.
func (f *FakeSurveyStore) InvalidatedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Invalidated...)
}

// SurveyStoreOf wraps surveys into a FakeSurveyStore keyed by id.
func SurveyStoreOf(svs ...*models.Survey) *FakeSurveyStore {
	m := make(map[string]*models.Survey, len(svs))
	for _, sv := range svs {
		m[sv.ID] = sv
	}
	return &FakeSurveyStore{Surveys: m}
}

// Eventually polls cond until it holds or the deadline passes.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
