// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"sort"
	"sync"

	"github.com/danielhkuo/survey-relay/models"
)

// Cache is the in-memory canonical store of response records, keyed by
// survey id. Each survey's list is kept de-duplicated and sorted on every
// write, so reads never sort. Merge and UpsertDetail are the only mutation
// entry points and apply atomically under the lock; readers always see a
// complete merge batch or none of it.
type Cache struct {
	mu       sync.RWMutex
	records  map[string][]models.ResponseRecord
	loaded   map[string]bool
	inflight map[string]bool
}

func New() *Cache {
	return &Cache{
		records:  make(map[string][]models.ResponseRecord),
		loaded:   make(map[string]bool),
		inflight: make(map[string]bool),
	}
}

// Records returns a copy of the survey's record list, newest first. The
// returned slice is the caller's to keep.
func (c *Cache) Records(surveyID string) []models.ResponseRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := c.records[surveyID]
	out := make([]models.ResponseRecord, len(list))
	copy(out, list)
	return out
}

// Find returns the record with the given id, if cached.
func (c *Cache) Find(surveyID, responseID string) (models.ResponseRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records[surveyID] {
		if r.ID == responseID {
			return r, true
		}
	}
	return models.ResponseRecord{}, false
}

// Count returns the number of cached records for the survey.
func (c *Cache) Count(surveyID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records[surveyID])
}

// Total returns the number of cached records across all surveys.
func (c *Cache) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, list := range c.records {
		n += len(list)
	}
	return n
}

// BeginLoad claims the per-survey load marker. It returns true when the
// caller should fetch: the survey has never loaded and no fetch is in
// flight. The marker is claimed before the fetch resolves so two concurrent
// list calls cannot issue duplicate fetches.
func (c *Cache) BeginLoad(surveyID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded[surveyID] || c.inflight[surveyID] {
		return false
	}
	c.inflight[surveyID] = true
	return true
}

// FinishLoad releases the in-flight marker. On success the survey is marked
// loaded; on failure the marker rolls back so a later call retries.
func (c *Cache) FinishLoad(surveyID string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, surveyID)
	if ok {
		c.loaded[surveyID] = true
	}
}

// Loaded reports whether the survey's list has been loaded this session.
func (c *Cache) Loaded(surveyID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded[surveyID]
}

// Merge folds new records into the survey's list, de-duplicating by id.
// For an id already present, the first-seen submission timestamp wins and a
// populated answer set is never overwritten by an empty one, so a partial or
// lazy refresh cannot erase previously known data. An empty batch is a
// no-op. Stale fetches landing after newer ones merge harmlessly; the
// operation is commutative and loss-free for non-empty answers.
func (c *Cache) Merge(surveyID string, recs []models.ResponseRecord) {
	if len(recs) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.records[surveyID]
	index := make(map[string]int, len(list))
	for i, r := range list {
		index[r.ID] = i
	}
	for _, rec := range recs {
		i, ok := index[rec.ID]
		if !ok {
			index[rec.ID] = len(list)
			list = append(list, rec)
			continue
		}
		if rec.HasAnswers() {
			list[i].Answers = rec.Answers
		}
	}
	sortRecords(list)
	c.records[surveyID] = list
}

// UpsertDetail inserts or refreshes a single record, with the same
// no-erase semantics as Merge.
func (c *Cache) UpsertDetail(surveyID string, rec models.ResponseRecord) {
	c.Merge(surveyID, []models.ResponseRecord{rec})
}

// Invalidate drops the survey's records and its loaded marker, used when
// the owning survey is deleted. A fetch already in flight may re-mark the
// survey loaded afterwards; the merge it applies is idempotent.
func (c *Cache) Invalidate(surveyID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, surveyID)
	delete(c.loaded, surveyID)
}

// sortRecords orders newest first. Equal timestamps fall back to descending
// id compare so ordering is deterministic across ingestion paths.
func sortRecords(list []models.ResponseRecord) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].SubmittedAt.Equal(list[j].SubmittedAt) {
			return list[i].SubmittedAt.After(list[j].SubmittedAt)
		}
		return list[i].ID > list[j].ID
	})
}
