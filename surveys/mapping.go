// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package surveys

import (
	"strings"

	"github.com/danielhkuo/survey-relay/envelope"
	"github.com/danielhkuo/survey-relay/models"
)

// QuestionType is one entry of the backend's question-type vocabulary.
type QuestionType struct {
	TypeID  string `json:"type_id"`
	TypeKey string `json:"type_key"`
	Label   string `json:"label"`
}

// MapSurveyDTO maps a backend survey object to the domain model. Questions
// are left empty; the detail endpoint supplies them.
func MapSurveyDTO(dto map[string]any) models.Survey {
	id, _ := envelope.StringField(dto, "survey_id", "id")
	title, _ := envelope.StringField(dto, "title")
	desc, _ := envelope.StringField(dto, "description")
	status, _ := envelope.StringField(dto, "status")

	sv := models.Survey{
		ID:          id,
		Title:       title,
		Description: desc,
		Active:      strings.EqualFold(status, models.StatusActive),
	}
	if raw, ok := envelope.StringField(dto, "created_at"); ok {
		if t, ok := envelope.ParseTime(raw); ok {
			sv.CreatedAt = t
		}
	}
	return sv
}

// MapSurveyDetail maps a survey detail object, questions included.
func MapSurveyDetail(dto map[string]any) models.Survey {
	sv := MapSurveyDTO(dto)
	qs, _ := envelope.AsArray(dto["questions"])
	for _, qv := range qs {
		if q, ok := envelope.AsObject(qv); ok {
			sv.Questions = append(sv.Questions, MapQuestionDTO(q))
		}
	}
	return sv
}

// MapQuestionDTO maps a backend question object, resolving its type_key to
// the open/single/multiple vocabulary and flattening its options.
func MapQuestionDTO(dto map[string]any) models.Question {
	id, _ := envelope.StringField(dto, "question_id", "id")
	text, _ := envelope.StringField(dto, "question_text", "text")
	typeKey, _ := envelope.StringField(dto, "type_key", "type")

	q := models.Question{
		ID:       id,
		Text:     text,
		Type:     MapTypeKey(typeKey),
		Required: dto["is_required"] == true,
	}
	opts, _ := envelope.AsArray(dto["options"])
	for _, ov := range opts {
		o, ok := envelope.AsObject(ov)
		if !ok {
			continue
		}
		oid, _ := envelope.StringField(o, "option_id", "id")
		label, _ := envelope.StringField(o, "option_label", "text", "label")
		q.Options = append(q.Options, models.Option{ID: oid, Text: label})
	}
	return q
}

// MapTypeKey maps a backend type_key to the domain question types. The
// vocabulary has shipped both English and Spanish keys; unknown keys fall
// back to open, the only type safe to render for arbitrary values.
func MapTypeKey(key string) string {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "open"), k == "abierta":
		return models.TypeOpen
	case strings.Contains(k, "single"), strings.Contains(k, "única"), strings.Contains(k, "unica"):
		return models.TypeSingle
	case strings.Contains(k, "multiple"):
		return models.TypeMultiple
	default:
		return models.TypeOpen
	}
}

// ParseQuestionTypes maps the vocabulary payload, an array of
// {type_id, type_key, label} objects.
func ParseQuestionTypes(payload any) []QuestionType {
	arr, _ := envelope.AsArray(payload)
	out := make([]QuestionType, 0, len(arr))
	for _, el := range arr {
		m, ok := envelope.AsObject(el)
		if !ok {
			continue
		}
		var qt QuestionType
		qt.TypeID, _ = envelope.StringField(m, "type_id")
		qt.TypeKey, _ = envelope.StringField(m, "type_key")
		qt.Label, _ = envelope.StringField(m, "label")
		if qt.TypeKey != "" {
			out = append(out, qt)
		}
	}
	return out
}
