// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package envelope

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/survey-relay/models"
)

// idKeys are the field names backends have assigned response ids under.
var idKeys = []string{"response_id", "id", "respuesta_id", "id_respuesta", "uuid", "codigo"}

// timestampKeys are the field names backends have carried the submission
// timestamp under, across snake_case and camelCase generations.
var timestampKeys = []string{"submitted_at", "created_at", "fecha_envio", "fechaCreacion", "submittedAt", "createdAt"}

// timeLayouts accepted for submission timestamps, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// MapListItem builds the base record for one raw response object: id probed
// from the known candidate fields (a local placeholder is synthesized when
// every candidate is absent), and submission timestamp probed likewise. The
// answer set is left nil; normalization is the caller's concern.
func MapListItem(dto map[string]any, surveyID string) models.ResponseRecord {
	id, ok := StringField(dto, idKeys...)
	if !ok {
		id = PlaceholderID()
	}
	return models.ResponseRecord{
		ID:          id,
		SurveyID:    surveyID,
		SubmittedAt: submittedAt(dto),
	}
}

// PlaceholderID synthesizes a local response id for records the backend
// returned without one. The tmp_ prefix keeps them recognizable until an
// authoritative refresh supplies the real id.
func PlaceholderID() string {
	return "tmp_" + uuid.NewString()
}

// IsPlaceholderID reports whether id was synthesized locally.
func IsPlaceholderID(id string) bool {
	return len(id) > 4 && id[:4] == "tmp_"
}

func submittedAt(dto map[string]any) time.Time {
	if raw, ok := StringField(dto, timestampKeys...); ok {
		if t, ok := ParseTime(raw); ok {
			return t
		}
	}
	// Unparseable or missing stamps fall back to ingestion time so the
	// per-survey ordering stays total.
	return time.Now().UTC()
}

// ParseTime parses a backend timestamp in any of the accepted layouts.
func ParseTime(raw string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// RawAnswers returns the raw answer blob attached to a response object, in
// either of its two field spellings, or nil when the object carries none.
func RawAnswers(dto map[string]any) any {
	if v, ok := Field(dto, "answers", "answers_by_question_id"); ok {
		return v
	}
	return nil
}
