// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"strings"
)

var (
	ErrSurveyNotFound = errors.New("survey not found")
	ErrSurveyClosed   = errors.New("survey is closed and does not accept responses")
)

// ValidationError reports every required question left unanswered in a
// submission attempt, so the caller sees the full list at once instead of
// failing question by question.
type ValidationError struct {
	Missing []string // question texts, in schema order
}

func (e *ValidationError) Error() string {
	return "missing required answers: " + strings.Join(e.Missing, ", ")
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
