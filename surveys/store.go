// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package surveys

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/survey-relay/envelope"
	"github.com/danielhkuo/survey-relay/models"
)

// Backend is the slice of the transport client the store needs.
type Backend interface {
	ListSurveys(ctx context.Context) (any, error)
	GetSurveyDetail(ctx context.Context, surveyID string) (any, error)
	QuestionTypes(ctx context.Context) (any, error)
}

// Store is a read-through cache of survey schemas. The relay never mutates
// survey definitions; it reads them to drive answer normalization and
// submission validation. The catalog is fetched once per session, question
// detail lazily per survey.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	surveys map[string]models.Survey
	loaded  bool
	types   []QuestionType
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		surveys: make(map[string]models.Survey),
	}
}

// GetByID returns the survey schema, fetching detail from the backend when
// the cached copy has no questions yet. The returned value is a private
// copy. Returns models.ErrSurveyNotFound when the backend knows nothing
// about the id.
func (s *Store) GetByID(ctx context.Context, surveyID string) (*models.Survey, error) {
	s.ensureLoaded(ctx)

	s.mu.RLock()
	cached, ok := s.surveys[surveyID]
	s.mu.RUnlock()
	if ok && len(cached.Questions) > 0 {
		cp := cloneSurvey(cached)
		return &cp, nil
	}

	data, err := s.backend.GetSurveyDetail(ctx, surveyID)
	if err != nil {
		if ok {
			// Catalog entry without detail beats nothing; validation will
			// just have no questions to check.
			slog.Warn("survey detail fetch failed, using catalog entry", "survey_id", surveyID, "error", err)
			cp := cloneSurvey(cached)
			return &cp, nil
		}
		return nil, fmt.Errorf("%w: %s", models.ErrSurveyNotFound, surveyID)
	}
	obj, objOK := envelope.AsObject(data)
	if !objOK {
		return nil, fmt.Errorf("%w: %s", models.ErrSurveyNotFound, surveyID)
	}

	mapped := MapSurveyDetail(obj)
	if mapped.ID == "" {
		mapped.ID = surveyID
	}
	s.mu.Lock()
	s.surveys[mapped.ID] = mapped
	s.mu.Unlock()

	cp := cloneSurvey(mapped)
	return &cp, nil
}

// Invalidate drops the cached schema, used when the survey is deleted.
func (s *Store) Invalidate(surveyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.surveys, surveyID)
}

// Types returns the backend's question-type vocabulary, fetched once and
// cached for the session.
func (s *Store) Types(ctx context.Context) ([]QuestionType, error) {
	s.mu.RLock()
	cached := s.types
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	data, err := s.backend.QuestionTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch question types: %w", err)
	}
	types := ParseQuestionTypes(data)
	s.mu.Lock()
	s.types = types
	s.mu.Unlock()
	return types, nil
}

func (s *Store) ensureLoaded(ctx context.Context) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return
	}

	data, err := s.backend.ListSurveys(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	// Loaded either way; a broken catalog endpoint must not be retried on
	// every read, and GetByID still falls through to the detail endpoint.
	s.loaded = true
	if err != nil {
		slog.Warn("survey catalog fetch failed", "error", err)
		return
	}
	arr, _ := envelope.AsArray(data)
	for _, el := range arr {
		if m, ok := envelope.AsObject(el); ok {
			sv := MapSurveyDTO(m)
			if sv.ID == "" {
				continue
			}
			if _, exists := s.surveys[sv.ID]; !exists {
				s.surveys[sv.ID] = sv
			}
		}
	}
}

func cloneSurvey(sv models.Survey) models.Survey {
	cp := sv
	cp.Questions = make([]models.Question, len(sv.Questions))
	for i, q := range sv.Questions {
		qc := q
		qc.Options = append([]models.Option(nil), q.Options...)
		cp.Questions[i] = qc
	}
	return cp
}
