// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package envelope

// The backend's response-listing endpoint has shipped three incompatible
// envelopes over time: a flat array, a keyed wrapper under a varying name,
// and a per-question grouped view. Items accepts any of them and returns a
// flat sequence of response-like objects, or nil when the payload carries
// no recognizable data. Callers must treat nil as "no data", not an error.

// envelopeKeys are the wrapper names the backend has used for list payloads,
// probed in priority order.
var envelopeKeys = []string{"items", "data", "rows", "list", "results", "respuestas", "records"}

// submittedAtKeys are the field names grouped answer entries have carried a
// submission timestamp under.
var submittedAtKeys = []string{"submitted_at", "created_at", "fecha_envio"}

// Items extracts the flat sequence of raw response objects from a list
// payload of any known envelope shape.
func Items(payload any) []map[string]any {
	if arr, ok := AsArray(payload); ok {
		return objects(arr)
	}
	obj, ok := AsObject(payload)
	if !ok {
		return nil
	}
	for _, key := range envelopeKeys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		if arr, ok := AsArray(v); ok {
			if items := objects(arr); len(items) > 0 {
				return items
			}
			// An empty wrapper is not the final word; the same payload
			// may still carry the grouped view.
			continue
		}
		// Some backends nest once more: {data: {items: [...]}}
		if inner, ok := AsObject(v); ok {
			if arr, ok := AsArray(inner["items"]); ok {
				if items := objects(arr); len(items) > 0 {
					return items
				}
			}
		}
	}
	if isGrouped(obj) {
		return fromGrouped(obj)
	}
	return nil
}

func objects(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := AsObject(el); ok {
			out = append(out, m)
		}
	}
	return out
}

// isGrouped detects the grouped-by-question list shape: an object whose
// "questions" entry is an array of per-question answer groups.
func isGrouped(obj map[string]any) bool {
	_, ok := AsArray(obj["questions"])
	return ok
}

// fromGrouped transposes a grouped-by-question payload into per-response
// objects. Expected structure:
//
//	{questions: [{question_id, answers: [{response_id, value_text | selected_option_id | option_ids, submitted_at?}]}]}
//
// Answer entries referencing the same response id are accumulated into one
// synthetic object keyed by question id, carrying the earliest discovered
// timestamp. Output order is first appearance of each response id, so the
// transposition is deterministic.
func fromGrouped(obj map[string]any) []map[string]any {
	type partial struct {
		submittedAt string
		answers     map[string]any
	}
	byResp := make(map[string]*partial)
	var order []string

	questions, _ := AsArray(obj["questions"])
	for _, qv := range questions {
		q, ok := AsObject(qv)
		if !ok {
			continue
		}
		qid, ok := StringField(q, "question_id", "qid", "id")
		if !ok {
			continue
		}
		answers, _ := AsArray(q["answers"])
		for _, av := range answers {
			a, ok := AsObject(av)
			if !ok {
				continue
			}
			rid, ok := StringField(a, "response_id", "id", "respuesta_id")
			if !ok {
				continue
			}
			p := byResp[rid]
			if p == nil {
				p = &partial{answers: make(map[string]any)}
				byResp[rid] = p
				order = append(order, rid)
			}
			if p.submittedAt == "" {
				if ts, ok := StringField(a, submittedAtKeys...); ok {
					p.submittedAt = ts
				}
			}
			switch {
			case a["option_ids"] != nil:
				p.answers[qid] = a["option_ids"]
			case a["selected_option_id"] != nil:
				p.answers[qid] = a["selected_option_id"]
			case a["value_text"] != nil:
				p.answers[qid] = a["value_text"]
			case a["answer_text"] != nil:
				p.answers[qid] = a["answer_text"]
			}
		}
	}

	out := make([]map[string]any, 0, len(order))
	for _, rid := range order {
		p := byResp[rid]
		item := map[string]any{
			"id":                     rid,
			"answers_by_question_id": p.answers,
		}
		if p.submittedAt != "" {
			item["submitted_at"] = p.submittedAt
		}
		out = append(out, item)
	}
	return out
}
