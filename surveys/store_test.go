// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package surveys

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/survey-relay/models"
)

// fakeCatalog implements Backend with canned payloads per operation.
type fakeCatalog struct {
	listPayload any
	listErr     error
	detail      map[string]any
	detailErr   error
	types       any
	typesErr    error

	listCalls   int
	detailCalls int
	typesCalls  int
}

func (f *fakeCatalog) ListSurveys(ctx context.Context) (any, error) {
	f.listCalls++
	return f.listPayload, f.listErr
}

func (f *fakeCatalog) GetSurveyDetail(ctx context.Context, surveyID string) (any, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if d, ok := f.detail[surveyID]; ok {
		return d, nil
	}
	return nil, errors.New("404")
}

func (f *fakeCatalog) QuestionTypes(ctx context.Context) (any, error) {
	f.typesCalls++
	return f.types, f.typesErr
}

func detailPayload(id string) map[string]any {
	return map[string]any{
		"survey_id": id,
		"title":     "T",
		"status":    "Activo",
		"questions": []any{
			map[string]any{"question_id": "q1", "question_text": "Q?", "type_key": "open_text", "is_required": true},
		},
	}
}

func TestGetByID_FetchesDetailOnce(t *testing.T) {
	backend := &fakeCatalog{
		listPayload: []any{map[string]any{"survey_id": "s1", "title": "T", "status": "Activo"}},
		detail:      map[string]any{"s1": detailPayload("s1")},
	}
	store := NewStore(backend)
	ctx := context.Background()

	sv, err := store.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("Expected survey, got %v", err)
	}
	if len(sv.Questions) != 1 || sv.Questions[0].ID != "q1" {
		t.Errorf("Expected detail questions, got %+v", sv.Questions)
	}

	// Second read serves from cache.
	if _, err := store.GetByID(ctx, "s1"); err != nil {
		t.Fatalf("Expected cached survey, got %v", err)
	}
	if backend.detailCalls != 1 {
		t.Errorf("Expected 1 detail fetch, got %d", backend.detailCalls)
	}
	if backend.listCalls != 1 {
		t.Errorf("Expected 1 catalog fetch, got %d", backend.listCalls)
	}
}

func TestGetByID_UnknownSurvey(t *testing.T) {
	backend := &fakeCatalog{listPayload: []any{}}
	store := NewStore(backend)

	_, err := store.GetByID(context.Background(), "nope")
	if !errors.Is(err, models.ErrSurveyNotFound) {
		t.Errorf("Expected ErrSurveyNotFound, got %v", err)
	}
}

func TestGetByID_DetailFailureUsesCatalogEntry(t *testing.T) {
	backend := &fakeCatalog{
		listPayload: []any{map[string]any{"survey_id": "s1", "title": "T", "status": "Activo"}},
		detailErr:   errors.New("500"),
	}
	store := NewStore(backend)

	sv, err := store.GetByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Expected degraded survey, got %v", err)
	}
	if sv.ID != "s1" || !sv.Active {
		t.Errorf("Expected catalog entry, got %+v", sv)
	}
	if len(sv.Questions) != 0 {
		t.Errorf("Expected no questions without detail, got %+v", sv.Questions)
	}
}

func TestGetByID_CatalogFailureStillResolvesDetail(t *testing.T) {
	backend := &fakeCatalog{
		listErr: errors.New("catalog down"),
		detail:  map[string]any{"s1": detailPayload("s1")},
	}
	store := NewStore(backend)
	ctx := context.Background()

	sv, err := store.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("Expected detail fallback, got %v", err)
	}
	if len(sv.Questions) != 1 {
		t.Errorf("Expected questions from detail, got %+v", sv.Questions)
	}

	// The broken catalog is not retried on every read.
	store.GetByID(ctx, "s1")
	if backend.listCalls != 1 {
		t.Errorf("Expected 1 catalog attempt, got %d", backend.listCalls)
	}
}

func TestGetByID_ReturnsACopy(t *testing.T) {
	backend := &fakeCatalog{detail: map[string]any{"s1": detailPayload("s1")}}
	store := NewStore(backend)
	ctx := context.Background()

	sv, _ := store.GetByID(ctx, "s1")
	sv.Questions[0].ID = "mutated"

	again, _ := store.GetByID(ctx, "s1")
	if again.Questions[0].ID != "q1" {
		t.Error("Expected store unaffected by caller mutation")
	}
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	backend := &fakeCatalog{detail: map[string]any{"s1": detailPayload("s1")}}
	store := NewStore(backend)
	ctx := context.Background()

	store.GetByID(ctx, "s1")
	store.Invalidate("s1")
	store.GetByID(ctx, "s1")
	if backend.detailCalls != 2 {
		t.Errorf("Expected refetch after invalidation, got %d detail calls", backend.detailCalls)
	}
}

func TestTypes_CachedAfterFirstFetch(t *testing.T) {
	backend := &fakeCatalog{types: []any{
		map[string]any{"type_id": "1", "type_key": "open_text", "label": "Open"},
	}}
	store := NewStore(backend)
	ctx := context.Background()

	types, err := store.Types(ctx)
	if err != nil {
		t.Fatalf("Expected vocabulary, got %v", err)
	}
	if len(types) != 1 || types[0].TypeKey != "open_text" {
		t.Errorf("Expected parsed vocabulary, got %+v", types)
	}

	store.Types(ctx)
	if backend.typesCalls != 1 {
		t.Errorf("Expected 1 vocabulary fetch, got %d", backend.typesCalls)
	}
}

func TestTypes_ErrorPropagates(t *testing.T) {
	backend := &fakeCatalog{typesErr: errors.New("boom")}
	store := NewStore(backend)

	if _, err := store.Types(context.Background()); err == nil {
		t.Error("Expected error")
	}
}
