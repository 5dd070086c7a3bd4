// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package responses

import (
	"strings"

	"github.com/danielhkuo/survey-relay/envelope"
	"github.com/danielhkuo/survey-relay/models"
)

// Validate checks a client-supplied answer set against the survey schema.
// The closed-survey check runs before any per-question validation. Required
// questions left unanswered are collected into one ValidationError naming
// all of them, not just the first: an open or single answer is missing when
// it is empty after trimming, a multiple answer when it is not a non-empty
// list.
func Validate(survey *models.Survey, answers map[string]any) error {
	if !survey.Active {
		return models.ErrSurveyClosed
	}
	var missing []string
	for _, q := range survey.Questions {
		if !q.Required {
			continue
		}
		v := answers[q.ID]
		switch q.Type {
		case models.TypeOpen, models.TypeSingle:
			if strings.TrimSpace(envelope.Stringify(v)) == "" {
				missing = append(missing, q.Text)
			}
		case models.TypeMultiple:
			if len(stringList(v)) == 0 {
				missing = append(missing, q.Text)
			}
		}
	}
	if len(missing) > 0 {
		return &models.ValidationError{Missing: missing}
	}
	return nil
}

// BuildPayload assembles the canonical wire payload. Every answered
// question emits one entry keyed by question_id with the type-appropriate
// field; unanswered questions are omitted entirely, never sent as nulls.
func BuildPayload(survey *models.Survey, answers map[string]any) models.SubmissionPayload {
	payload := models.SubmissionPayload{Answers: []models.SubmissionEntry{}}
	for _, q := range survey.Questions {
		v, ok := answers[q.ID]
		if !ok || v == nil {
			continue
		}
		switch q.Type {
		case models.TypeOpen:
			s := envelope.Stringify(v)
			if strings.TrimSpace(s) == "" {
				continue
			}
			payload.Answers = append(payload.Answers, models.SubmissionEntry{QuestionID: q.ID, ValueText: s})
		case models.TypeSingle:
			s := envelope.Stringify(v)
			if strings.TrimSpace(s) == "" {
				continue
			}
			payload.Answers = append(payload.Answers, models.SubmissionEntry{QuestionID: q.ID, OptionID: s})
		case models.TypeMultiple:
			// A bare scalar is accepted as a single selection.
			ids := stringList(v)
			if len(ids) == 0 {
				if s := envelope.Stringify(v); s != "" {
					ids = []string{s}
				}
			}
			if len(ids) == 0 {
				continue
			}
			payload.Answers = append(payload.Answers, models.SubmissionEntry{QuestionID: q.ID, OptionIDs: ids})
		}
	}
	return payload
}

// stringList renders a client-supplied list value. HTTP callers deliver
// []any from JSON decoding; in-process callers may pass []string.
func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		return envelope.StringList(t)
	default:
		return nil
	}
}
