// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"github.com/danielhkuo/survey-relay/envelope"
	"github.com/danielhkuo/survey-relay/models"
)

// Answers reduces a raw answer blob to the canonical mapping of question id
// to typed value, using the survey's question schema to decide each value's
// shape. The blob is either an object keyed by question id or an array of
// per-question entries; both forms appear in the wild, sometimes from the
// same backend. Fields that resolve to nothing are dropped without trace.
// Returns nil when no question produced a value, so callers can tell "no
// information" apart from an empty mapping.
func Answers(raw any, survey *models.Survey) models.AnswerMap {
	if raw == nil || survey == nil {
		return nil
	}
	if obj, ok := envelope.AsObject(raw); ok {
		return fromObject(obj, survey)
	}
	if arr, ok := envelope.AsArray(raw); ok {
		return fromEntries(arr, survey)
	}
	return nil
}

// fromObject handles the {questionID: value} form, coercing each value per
// the owning question's type.
func fromObject(obj map[string]any, survey *models.Survey) models.AnswerMap {
	out := models.AnswerMap{}
	for _, q := range survey.Questions {
		v, ok := obj[q.ID]
		if !ok || v == nil {
			continue
		}
		switch q.Type {
		case models.TypeOpen:
			out[q.ID] = models.AnswerValue{Text: envelope.Stringify(v)}
		case models.TypeSingle:
			if id, ok := coerceOptionID(v, q.Options); ok {
				out[q.ID] = models.AnswerValue{OptionID: id}
			}
		case models.TypeMultiple:
			elems := anyList(v)
			var ids []string
			for _, el := range elems {
				if id, ok := coerceOptionID(el, q.Options); ok {
					ids = append(ids, id)
				}
			}
			if ids = dedupe(ids); len(ids) > 0 {
				out[q.ID] = models.AnswerValue{OptionIDs: ids}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// fromEntries handles the array-of-entries form, where each entry names its
// question and carries the value under one of several known fields.
func fromEntries(arr []any, survey *models.Survey) models.AnswerMap {
	byID := make(map[string]models.Question, len(survey.Questions))
	for _, q := range survey.Questions {
		byID[q.ID] = q
	}

	out := models.AnswerMap{}
	for _, el := range arr {
		entry, ok := envelope.AsObject(el)
		if !ok {
			continue
		}
		qid, ok := envelope.StringField(entry, "question_id", "qid")
		if !ok {
			continue
		}
		q, ok := byID[qid]
		if !ok {
			continue
		}
		switch q.Type {
		case models.TypeOpen:
			text, _ := envelope.StringField(entry, "value_text", "answer_text", "value", "text")
			out[q.ID] = models.AnswerValue{Text: text}
		case models.TypeSingle:
			if id, ok := singleValue(entry, q.Options); ok {
				out[q.ID] = models.AnswerValue{OptionID: id}
			}
		case models.TypeMultiple:
			ids := multiValues(entry, q.Options)
			if prev, ok := out[q.ID]; ok {
				ids = append(prev.OptionIDs, ids...)
			}
			if ids = dedupe(ids); len(ids) > 0 {
				out[q.ID] = models.AnswerValue{OptionIDs: ids}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// singleValue resolves a single-choice entry: direct id fields first, then a
// singleton id array, then the option label carried in a free-text field.
func singleValue(entry map[string]any, opts []models.Option) (string, bool) {
	if id, ok := envelope.StringField(entry, "option_id", "selected_option_id", "value", "answer_value"); ok {
		return id, true
	}
	// Aggregated payloads bring option_ids: [id] even for single choice.
	for _, key := range []string{"option_ids", "selected_option_ids"} {
		if ids := envelope.StringList(entry[key]); len(ids) == 1 {
			return ids[0], true
		}
	}
	if label, ok := envelope.StringField(entry, "value_text", "answer_text"); ok {
		if id, ok := optionByLabel(opts, label); ok {
			return id, true
		}
	}
	return "", false
}

// multiValues resolves a multiple-choice entry. When every element matches a
// known option id the list is taken verbatim; otherwise the elements are
// treated as display labels and resolved against the options, dropping
// whatever does not match. A legacy singleton selected_option_id is folded in.
func multiValues(entry map[string]any, opts []models.Option) []string {
	var ids []string
	if raw, ok := envelope.Field(entry, "option_ids", "selected_option_ids", "selectedOptions", "values", "answer_values"); ok {
		vals := envelope.StringList(raw)
		if allKnownIDs(vals, opts) {
			ids = vals
		} else {
			ids = optionsByLabels(opts, vals)
		}
	}
	if id, ok := envelope.StringField(entry, "selected_option_id"); ok {
		ids = append(ids, id)
	}
	return ids
}

// anyList widens a raw value to a []any. Client-side callers hand the
// normalizer []string values that JSON decoding would have delivered as
// []any; scalars become a singleton.
func anyList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}

func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
