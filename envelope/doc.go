// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package envelope detects backend payload shapes and extracts response items.

Backends return response lists in three shapes. Items normalizes all of
them to a flat item slice:

  - A bare JSON array of response objects
  - A wrapper object keyed by items, data, rows, list, results,
    respuestas, or records (one level of nesting tolerated)
  - A grouped-by-question view: {questions: [{question_id, answers: [...]}]},
    which is transposed into one synthetic item per response id, in
    first-seen order

# Field Probing

Backends also disagree on field names. StringField and Field probe an
ordered candidate list and return the first present value:

	id, ok := envelope.StringField(dto, "response_id", "id")

MapListItem builds a ResponseRecord from a raw item, probing the known id
and timestamp field candidates. Items without any usable id get a
placeholder ("tmp_" prefix) so they remain addressable until the backend
echoes a real id.

# Timestamps

ParseTime accepts the timestamp layouts observed in the wild (RFC3339
with and without fractional seconds, space-separated, date-only).
Unparseable timestamps fall back to ingestion time rather than dropping
the record.
*/
package envelope
