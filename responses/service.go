// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package responses

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/danielhkuo/survey-relay/cache"
	"github.com/danielhkuo/survey-relay/envelope"
	"github.com/danielhkuo/survey-relay/metrics"
	"github.com/danielhkuo/survey-relay/models"
	"github.com/danielhkuo/survey-relay/normalize"
	"github.com/danielhkuo/survey-relay/report"
)

// Transport is the backend client surface the service depends on.
type Transport interface {
	ListResponses(ctx context.Context, surveyID string, params url.Values) (any, error)
	GetResponseDetail(ctx context.Context, surveyID, responseID string) (any, error)
	SubmitResponse(ctx context.Context, surveyID string, payload models.SubmissionPayload) (any, error)
}

// SurveyStore supplies survey schemas, and drops one when its survey is
// deleted upstream.
type SurveyStore interface {
	GetByID(ctx context.Context, surveyID string) (*models.Survey, error)
	Invalidate(surveyID string)
}

// Snapshotter persists the canonical record set outside the process. The
// cache itself stays memory-only; the service writes through after merges,
// best effort.
type Snapshotter interface {
	SaveRecords(surveyID string, recs []models.ResponseRecord) error
	DeleteSurvey(surveyID string) error
}

// Service is the public face of response handling: non-blocking list reads
// backed by lazy background loads, lazy per-record detail fetches, and
// validated submissions with optimistic local insertion. All mutation flows
// through the cache's merge, so racing fetches cannot corrupt or erase data.
type Service struct {
	transport Transport
	surveys   SurveyStore
	cache     *cache.Cache
	snapshot  Snapshotter // may be nil
	bg        sync.WaitGroup
}

func NewService(t Transport, s SurveyStore, c *cache.Cache, snap Snapshotter) *Service {
	return &Service{transport: t, surveys: s, cache: c, snapshot: snap}
}

// List returns the cached records for a survey, newest first. The first
// call for a survey triggers a background load; the caller gets whatever is
// cached right now and later reads observe the merged result. Reads are
// snapshots and may be stale for a moment.
func (s *Service) List(ctx context.Context, surveyID string) []models.ResponseRecord {
	s.ensureListLoaded(ctx, surveyID)
	return s.cache.Records(surveyID)
}

// Get returns one cached record. A record cached without answers triggers a
// background detail fetch; an unknown id triggers the survey's list load so
// a later call can find it.
func (s *Service) Get(ctx context.Context, surveyID, responseID string) (*models.ResponseRecord, bool) {
	rec, ok := s.cache.Find(surveyID, responseID)
	if !ok {
		s.ensureListLoaded(ctx, surveyID)
		return nil, false
	}
	if !rec.HasAnswers() {
		s.spawn(ctx, func(bgCtx context.Context) {
			s.fetchDetail(bgCtx, surveyID, responseID)
		})
	}
	return &rec, true
}

// Submit validates, builds the wire payload, relays it to the backend, and
// optimistically inserts the resulting record before the authoritative
// refresh lands. Validation and transport errors propagate; the background
// refresh failure is swallowed and the optimistic record stands.
func (s *Service) Submit(ctx context.Context, surveyID string, answers map[string]any) (models.ResponseRecord, error) {
	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return models.ResponseRecord{}, err
	}
	if err := Validate(survey, answers); err != nil {
		return models.ResponseRecord{}, err
	}
	payload := BuildPayload(survey, answers)

	echo, err := s.transport.SubmitResponse(ctx, surveyID, payload)
	if err != nil {
		return models.ResponseRecord{}, err
	}

	obj, _ := envelope.AsObject(echo)
	if obj == nil {
		obj = map[string]any{}
	}
	rec := envelope.MapListItem(obj, surveyID)
	ans := normalize.Answers(envelope.RawAnswers(obj), survey)
	if len(ans) == 0 {
		// Echo carried nothing usable; fall back to what we sent, so the
		// record is never inserted answerless.
		ans = normalize.Answers(answers, survey)
	}
	if len(ans) > 0 {
		rec.Answers = ans
	}
	s.cache.UpsertDetail(surveyID, rec)
	metrics.Submissions.Inc()
	metrics.RecordsIngested.WithLabelValues("submit").Inc()
	s.persist(surveyID)

	slog.Info("response submitted", "survey_id", surveyID, "response_id", rec.ID)

	s.spawn(ctx, func(bgCtx context.Context) {
		// Best-effort authoritative refresh.
		_ = s.fetchList(bgCtx, surveyID)
	})
	return rec, nil
}

// Report builds per-question statistics over the currently cached records.
// Like List, it reads a snapshot and triggers the initial load if needed.
func (s *Service) Report(ctx context.Context, surveyID string) (*report.SurveyReport, error) {
	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	recs := s.List(ctx, surveyID)
	rep := report.Build(survey, recs)
	return &rep, nil
}

// Invalidate drops the survey's cached records, loaded marker, and cached
// schema, used when the owning survey is deleted. The schema must go too, or
// a stale question set would keep serving validation for a dead survey.
func (s *Service) Invalidate(surveyID string) {
	s.cache.Invalidate(surveyID)
	s.surveys.Invalidate(surveyID)
	if s.snapshot != nil {
		if err := s.snapshot.DeleteSurvey(surveyID); err != nil {
			slog.Warn("snapshot delete failed", "survey_id", surveyID, "error", err)
		}
	}
	metrics.CachedRecords.Set(float64(s.cache.Total()))
}

// Restore seeds the cache from a persisted snapshot, typically at startup.
// Surveys stay unmarked as loaded so the first read still refreshes from
// the backend; the no-erase merge keeps whichever side knows more.
func (s *Service) Restore(records map[string][]models.ResponseRecord) {
	for surveyID, recs := range records {
		s.cache.Merge(surveyID, recs)
	}
	metrics.CachedRecords.Set(float64(s.cache.Total()))
}

// Wait blocks until every background fetch started so far has finished.
// Called on shutdown, and by callers that need a settled cache.
func (s *Service) Wait() {
	s.bg.Wait()
}

func (s *Service) ensureListLoaded(ctx context.Context, surveyID string) {
	if surveyID == "" {
		return
	}
	if !s.cache.BeginLoad(surveyID) {
		return
	}
	s.spawn(ctx, func(bgCtx context.Context) {
		ok := s.fetchList(bgCtx, surveyID) == nil
		s.cache.FinishLoad(surveyID, ok)
	})
}

// fetchList pulls the survey's response list, normalizes every item, and
// merges the batch. Failures surface as warnings; prior cache state stays
// untouched.
func (s *Service) fetchList(ctx context.Context, surveyID string) error {
	data, err := s.transport.ListResponses(ctx, surveyID, nil)
	if err != nil {
		slog.Warn("response list fetch failed", "survey_id", surveyID, "error", err)
		metrics.FetchFailures.WithLabelValues("list").Inc()
		return err
	}
	items := envelope.Items(data)
	if len(items) == 0 {
		// Empty or unrecognizable payload is "no data": keep what we have.
		return nil
	}
	survey := s.schema(ctx, surveyID)
	recs := make([]models.ResponseRecord, 0, len(items))
	for _, it := range items {
		rec := envelope.MapListItem(it, surveyID)
		if ans := normalize.Answers(envelope.RawAnswers(it), survey); ans != nil {
			rec.Answers = ans
		}
		recs = append(recs, rec)
	}
	s.cache.Merge(surveyID, recs)
	metrics.RecordsIngested.WithLabelValues("list").Add(float64(len(recs)))
	s.persist(surveyID)
	return nil
}

// fetchDetail pulls one response's detail and merges its answers in place.
// When the detail endpoint fails or returns no answers, the list view is
// reloaded instead, since the grouped view can carry the same data.
func (s *Service) fetchDetail(ctx context.Context, surveyID, responseID string) {
	data, err := s.transport.GetResponseDetail(ctx, surveyID, responseID)
	if err != nil {
		slog.Warn("response detail fetch failed, reloading list", "survey_id", surveyID, "response_id", responseID, "error", err)
		metrics.FetchFailures.WithLabelValues("detail").Inc()
		_ = s.fetchList(ctx, surveyID)
		return
	}
	obj, ok := envelope.AsObject(data)
	if !ok {
		_ = s.fetchList(ctx, surveyID)
		return
	}

	survey := s.schema(ctx, surveyID)
	raw := envelope.RawAnswers(obj)
	if raw == nil {
		// Some backends return the answer blob as the whole detail body.
		raw = any(obj)
	}
	answers := normalize.Answers(raw, survey)

	rec := envelope.MapListItem(obj, surveyID)
	if _, found := s.cache.Find(surveyID, responseID); found {
		rec.ID = responseID
	}
	if len(answers) > 0 {
		rec.Answers = answers
	}
	s.cache.UpsertDetail(surveyID, rec)
	metrics.RecordsIngested.WithLabelValues("detail").Inc()
	s.persist(surveyID)

	if len(answers) == 0 {
		_ = s.fetchList(ctx, surveyID)
	}
}

// schema fetches the survey's question schema, degrading to nil when the
// accessor fails; normalization then resolves nothing and records keep
// their raw-free base form.
func (s *Service) schema(ctx context.Context, surveyID string) *models.Survey {
	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		slog.Warn("survey schema unavailable", "survey_id", surveyID, "error", err)
		return nil
	}
	return survey
}

func (s *Service) persist(surveyID string) {
	metrics.CachedRecords.Set(float64(s.cache.Total()))
	if s.snapshot == nil {
		return
	}
	if err := s.snapshot.SaveRecords(surveyID, s.cache.Records(surveyID)); err != nil {
		slog.Warn("snapshot save failed", "survey_id", surveyID, "error", err)
	}
}

// spawn runs fn detached from the caller's cancellation; an HTTP request
// finishing must not cancel a merge already under way.
func (s *Service) spawn(ctx context.Context, fn func(context.Context)) {
	bgCtx := context.WithoutCancel(ctx)
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		fn(bgCtx)
	}()
}
