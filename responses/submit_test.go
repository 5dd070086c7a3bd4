// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package responses

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/danielhkuo/survey-relay/models"
	"github.com/danielhkuo/survey-relay/testutil"
)

func TestValidate_ClosedSurveyCheckedFirst(t *testing.T) {
	survey := testutil.SampleSurvey()
	survey.Active = false

	// Even with required answers missing, the closed error wins.
	err := Validate(survey, map[string]any{})
	if !errors.Is(err, models.ErrSurveyClosed) {
		t.Errorf("Expected ErrSurveyClosed, got %v", err)
	}
}

func TestValidate_RequiredAnswers(t *testing.T) {
	survey := testutil.SampleSurvey()
	// Make all three questions required to exercise every type.
	for i := range survey.Questions {
		survey.Questions[i].Required = true
	}

	tests := []struct {
		name    string
		answers map[string]any
		missing []string
	}{
		{"all present", map[string]any{"q1": "hi", "q2": "o1", "q3": []any{"m1"}}, nil},
		{"all missing", map[string]any{}, []string{"Any comments?", "Preferred color", "Which channels do you use?"}},
		{"whitespace open answer", map[string]any{"q1": "   ", "q2": "o1", "q3": []any{"m1"}}, []string{"Any comments?"}},
		{"empty multi list", map[string]any{"q1": "hi", "q2": "o1", "q3": []any{}}, []string{"Which channels do you use?"}},
		{"nil single answer", map[string]any{"q1": "hi", "q3": []any{"m1"}}, []string{"Preferred color"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(survey, tt.answers)
			if tt.missing == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if !reflect.DeepEqual(verr.Missing, tt.missing) {
				t.Errorf("Expected missing %v, got %v", tt.missing, verr.Missing)
			}
		})
	}
}

func TestValidate_ErrorNamesEveryQuestion(t *testing.T) {
	survey := testutil.SampleSurvey()
	survey.Questions[1].Required = true

	err := Validate(survey, map[string]any{})
	if err == nil {
		t.Fatal("Expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Any comments?") || !strings.Contains(msg, "Preferred color") {
		t.Errorf("Expected message naming both questions, got %q", msg)
	}
}

func TestValidate_OptionalQuestionsSkipped(t *testing.T) {
	survey := testutil.SampleSurvey()
	if err := Validate(survey, map[string]any{"q1": "hi"}); err != nil {
		t.Errorf("Expected optional q2/q3 to pass unanswered, got %v", err)
	}
}

func TestBuildPayload_EntryPerType(t *testing.T) {
	survey := testutil.SampleSurvey()
	payload := BuildPayload(survey, map[string]any{
		"q1": "hello",
		"q2": "o2",
		"q3": []any{"m1", "m3"},
	})

	want := []models.SubmissionEntry{
		{QuestionID: "q1", ValueText: "hello"},
		{QuestionID: "q2", OptionID: "o2"},
		{QuestionID: "q3", OptionIDs: []string{"m1", "m3"}},
	}
	if !reflect.DeepEqual(payload.Answers, want) {
		t.Errorf("Expected %+v, got %+v", want, payload.Answers)
	}
}

func TestBuildPayload_OmitsEmpties(t *testing.T) {
	survey := testutil.SampleSurvey()
	tests := []struct {
		name    string
		answers map[string]any
	}{
		{"no answers", map[string]any{}},
		{"nil values", map[string]any{"q1": nil, "q2": nil, "q3": nil}},
		{"blank strings", map[string]any{"q1": "  ", "q2": ""}},
		{"empty list", map[string]any{"q3": []any{}}},
		{"unknown question", map[string]any{"zz": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := BuildPayload(survey, tt.answers)
			if len(payload.Answers) != 0 {
				t.Errorf("Expected no entries, got %+v", payload.Answers)
			}
			if payload.Answers == nil {
				t.Error("Expected empty slice, not nil, so the wire form is [] not null")
			}
		})
	}
}

func TestBuildPayload_ScalarMultipleBecomesSingleton(t *testing.T) {
	survey := testutil.SampleSurvey()
	payload := BuildPayload(survey, map[string]any{"q3": "m2"})

	want := []models.SubmissionEntry{{QuestionID: "q3", OptionIDs: []string{"m2"}}}
	if !reflect.DeepEqual(payload.Answers, want) {
		t.Errorf("Expected %+v, got %+v", want, payload.Answers)
	}
}

func TestBuildPayload_StringSliceFromInProcessCallers(t *testing.T) {
	survey := testutil.SampleSurvey()
	payload := BuildPayload(survey, map[string]any{"q3": []string{"m1", "m2"}})

	want := []models.SubmissionEntry{{QuestionID: "q3", OptionIDs: []string{"m1", "m2"}}}
	if !reflect.DeepEqual(payload.Answers, want) {
		t.Errorf("Expected %+v, got %+v", want, payload.Answers)
	}
}

func TestBuildPayload_OpenTextKeptVerbatim(t *testing.T) {
	survey := testutil.SampleSurvey()
	payload := BuildPayload(survey, map[string]any{"q1": "  padded  "})

	if len(payload.Answers) != 1 || payload.Answers[0].ValueText != "  padded  " {
		t.Errorf("Expected untrimmed text preserved, got %+v", payload.Answers)
	}
}

func TestBuildPayload_SchemaOrder(t *testing.T) {
	survey := testutil.SampleSurvey()
	payload := BuildPayload(survey, map[string]any{
		"q3": []any{"m1"},
		"q1": "hi",
	})

	if len(payload.Answers) != 2 || payload.Answers[0].QuestionID != "q1" || payload.Answers[1].QuestionID != "q3" {
		t.Errorf("Expected entries in schema order, got %+v", payload.Answers)
	}
}
