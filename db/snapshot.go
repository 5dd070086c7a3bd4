// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/survey-relay/models"
)

// Snapshot persists the canonical record set to a local sqlite file so a
// relay restart does not lose ingested data. It is a write-behind copy of
// the in-memory cache, never a second source of truth: the cache merges a
// restored snapshot the same way it merges any backend batch.
type Snapshot struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot file and ensures its schema.
func Open(path string) (*Snapshot, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	if err := CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &Snapshot{db: conn}, nil
}

func (s *Snapshot) Close() error {
	return s.db.Close()
}

// SaveRecords replaces the survey's persisted records with the given set,
// in one transaction.
func (s *Snapshot) SaveRecords(surveyID string, recs []models.ResponseRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM response_record WHERE survey_id = ?`, surveyID); err != nil {
		return fmt.Errorf("failed to clear snapshot rows: %w", err)
	}
	for _, rec := range recs {
		var answers any
		if rec.Answers != nil {
			raw, err := json.Marshal(rec.Answers)
			if err != nil {
				return fmt.Errorf("failed to encode answers for %s: %w", rec.ID, err)
			}
			answers = string(raw)
		}
		_, err := tx.Exec(`
			INSERT INTO response_record (id, survey_id, submitted_at, answers)
			VALUES (?, ?, ?, ?)
		`, rec.ID, surveyID, rec.SubmittedAt.UTC().Format(time.RFC3339Nano), answers)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot row: %w", err)
		}
	}
	return tx.Commit()
}

// LoadAll reads every persisted record, grouped by survey id.
func (s *Snapshot) LoadAll() (map[string][]models.ResponseRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, survey_id, submitted_at, answers
		FROM response_record
		ORDER BY survey_id, submitted_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.ResponseRecord)
	for rows.Next() {
		var rec models.ResponseRecord
		var stamp string
		var answers sql.NullString
		if err := rows.Scan(&rec.ID, &rec.SurveyID, &stamp, &answers); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
			rec.SubmittedAt = t
		}
		if answers.Valid {
			if err := json.Unmarshal([]byte(answers.String), &rec.Answers); err != nil {
				// A corrupt row degrades to an answerless record; the next
				// refresh repopulates it.
				rec.Answers = nil
			}
		}
		out[rec.SurveyID] = append(out[rec.SurveyID], rec)
	}
	return out, rows.Err()
}

// DeleteSurvey removes the survey's persisted records.
func (s *Snapshot) DeleteSurvey(surveyID string) error {
	if _, err := s.db.Exec(`DELETE FROM response_record WHERE survey_id = ?`, surveyID); err != nil {
		return fmt.Errorf("failed to delete snapshot rows: %w", err)
	}
	return nil
}

// CreateSchema creates the snapshot table. Safe to call multiple times -
// uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Canonical response records, one row per (survey, response)
CREATE TABLE IF NOT EXISTS response_record (
    id TEXT NOT NULL,
    survey_id TEXT NOT NULL,
    submitted_at TEXT NOT NULL,
    answers TEXT,
    PRIMARY KEY (survey_id, id)
);

CREATE INDEX IF NOT EXISTS idx_response_record_survey_id ON response_record(survey_id);
`
