package models

import "time"

// Question type constants
const (
	TypeOpen     = "open"
	TypeSingle   = "single"
	TypeMultiple = "multiple"
)

// Survey status values used by the backend
const (
	StatusActive = "Activo"
	StatusClosed = "Cerrado"
)

// Request types

// SubmitResponseRequest carries UI-facing answer values: a string for open
// questions, an option id for single choice, an array for multiple choice.
type SubmitResponseRequest struct {
	Answers map[string]any `json:"answers_by_question_id"`
}

// Response types

type ListResponsesResponse struct {
	SurveyID string           `json:"survey_id"`
	Total    int              `json:"total"`
	Items    []ResponseRecord `json:"items"`
}

type SubmitResponseResponse struct {
	Response ResponseRecord `json:"response"`
	Message  string         `json:"message"`
}

// Domain types

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []Option `json:"options,omitempty"`
}

type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	Questions   []Question `json:"questions"`
}

// AnswerValue is a normalized answer. Exactly one field is meaningful,
// selected by the owning question's type: Text for open questions, OptionID
// for single choice, OptionIDs for multiple choice.
type AnswerValue struct {
	Text      string   `json:"text,omitempty"`
	OptionID  string   `json:"option_id,omitempty"`
	OptionIDs []string `json:"option_ids,omitempty"`
}

// AnswerMap maps question id to its normalized answer. Presence of a key
// means the question was answered, even if the stored text is empty.
type AnswerMap map[string]AnswerValue

// ResponseRecord is one submitted survey response. A nil Answers map means
// the record is known to exist but its detail has not been fetched yet.
type ResponseRecord struct {
	ID          string    `json:"id"`
	SurveyID    string    `json:"survey_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Answers     AnswerMap `json:"answers,omitempty"`
}

// HasAnswers reports whether the record carries a populated answer set.
func (r ResponseRecord) HasAnswers() bool {
	return len(r.Answers) > 0
}

// Submission wire format

type SubmissionEntry struct {
	QuestionID string   `json:"question_id"`
	ValueText  string   `json:"value_text,omitempty"`
	OptionID   string   `json:"option_id,omitempty"`
	OptionIDs  []string `json:"option_ids,omitempty"`
}

type SubmissionPayload struct {
	Answers []SubmissionEntry `json:"answers"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
