// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"strings"

	"github.com/danielhkuo/survey-relay/envelope"
	"github.com/danielhkuo/survey-relay/models"
)

// coerceOptionID turns a raw value into an option id. Known option ids and
// numeric-looking ids pass through verbatim; anything else is treated as a
// display label and resolved case-insensitively against the options.
func coerceOptionID(v any, opts []models.Option) (string, bool) {
	s := envelope.Stringify(v)
	if s == "" {
		return "", false
	}
	for _, opt := range opts {
		if opt.ID == s {
			return s, true
		}
	}
	if isNumeric(s) {
		return s, true
	}
	return optionByLabel(opts, s)
}

// optionByLabel matches a free-text value against option display labels,
// trimmed and case-insensitive.
func optionByLabel(opts []models.Option, label string) (string, bool) {
	want := foldLabel(label)
	if want == "" {
		return "", false
	}
	for _, opt := range opts {
		if foldLabel(opt.Text) == want {
			return opt.ID, true
		}
	}
	return "", false
}

// optionsByLabels resolves a batch of labels, returning matched option ids
// in option order and silently dropping labels that match nothing.
func optionsByLabels(opts []models.Option, labels []string) []string {
	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		if f := foldLabel(l); f != "" {
			want[f] = true
		}
	}
	var ids []string
	for _, opt := range opts {
		if want[foldLabel(opt.Text)] {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

func allKnownIDs(vals []string, opts []models.Option) bool {
	if len(vals) == 0 {
		return false
	}
	known := make(map[string]bool, len(opts))
	for _, opt := range opts {
		known[opt.ID] = true
	}
	for _, v := range vals {
		if !known[v] {
			return false
		}
	}
	return true
}

func foldLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
