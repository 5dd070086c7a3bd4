// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists the relay's record cache to a local sqlite file.

The snapshot is write-behind and best-effort: the in-memory cache is the
working copy, the backend is the source of truth, and the snapshot only
exists so a restart does not begin with an empty cache. A restored
snapshot is merged through the cache's normal union semantics, so stale
snapshot rows cannot overwrite fresher backend data.

# Schema

One table, one row per (survey, response):

	response_record(id, survey_id, submitted_at, answers)

Answers are stored as a JSON blob, NULL for answerless records. Schema
creation is idempotent - uses IF NOT EXISTS.

# Usage

	snap, err := db.Open(cfg.SnapshotPath)
	...
	snap.SaveRecords(surveyID, cache.Records(surveyID))
	restored, err := snap.LoadAll()
*/
package db
