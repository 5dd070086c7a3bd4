// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the relay.

# Request Types

Types for parsing incoming JSON:

  - SubmitResponseRequest: answers_by_question_id (map of question id to value)

# Response Types

Types for JSON responses:

  - ListResponsesResponse: survey_id, total, items
  - SubmitResponseResponse: response, message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Survey: survey metadata plus its question schema
  - Question: id, text, type, required flag, options
  - Option: choice id and label
  - ResponseRecord: one canonical response with normalized answers
  - AnswerValue: per-question value (Text, OptionID, or OptionIDs)
  - AnswerMap: question id → AnswerValue
  - SubmissionPayload / SubmissionEntry: outbound wire form

# Answer Shape

Exactly one field of AnswerValue is populated, by question type:

	open     → Text
	single   → OptionID
	multiple → OptionIDs

# Errors

Sentinel errors and the validation error type:

	ErrSurveyNotFound
	ErrSurveyClosed
	ValidationError{Missing: [...]}

Use IsValidation to recover the typed error from a wrapped chain.

# Constants

Question types:

	TypeOpen     = "open"
	TypeSingle   = "single"
	TypeMultiple = "multiple"

Backend status values:

	StatusActive = "Activo"
	StatusClosed = "Cerrado"
*/
package models
