// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package normalize turns raw answer blobs into canonical per-question values.

Answers accepts the two raw forms backends produce - an object keyed by
question id, or an array of answer entries - and resolves each value
against the survey's question schema:

	open     → free text, stringified
	single   → one option id
	multiple → a de-duplicated option id list

# Value Resolution

Entry fields are probed in a fixed order per type (option_id,
selected_option_id, option_ids, value_text, answer_text, and friends).
Values that are not known option ids are treated as labels and matched
against option text case-insensitively after trimming; purely numeric
values are accepted verbatim, since several backends use integer option
ids the schema renders as strings.

Answers returns nil when nothing in the blob resolves against the schema,
so callers can distinguish "no answers" from an empty map and keep the
cache's no-erase merge semantics intact.
*/
package normalize
