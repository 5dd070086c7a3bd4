// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"math"
	"strings"
	"time"

	"github.com/danielhkuo/survey-relay/models"
)

// Summary is the survey-level headline: how many responses, how many
// questions.
type Summary struct {
	TotalResponses int `json:"total_responses"`
	QuestionCount  int `json:"question_count"`
}

// OpenRow is one free-text answer in an open question's listing.
type OpenRow struct {
	ResponseID  string    `json:"response_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Value       string    `json:"value"`
}

// OptionCount is one row of a choice question's distribution table.
type OptionCount struct {
	OptionID   string  `json:"option_id"`
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Chart is the label/value series derived from a distribution table.
type Chart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// QuestionStats aggregates one question across all responses. Open
// questions list their rows; choice questions carry a table and chart.
// TotalAnswered counts answers for open and single questions; Respondents
// counts responses that selected anything for a multiple question.
type QuestionStats struct {
	Type          string        `json:"type"`
	TotalAnswered int           `json:"total_answered,omitempty"`
	Respondents   int           `json:"respondents,omitempty"`
	Rows          []OpenRow     `json:"rows,omitempty"`
	Table         []OptionCount `json:"table,omitempty"`
	Chart         *Chart        `json:"chart,omitempty"`
}

type SurveyReport struct {
	Summary   Summary                  `json:"summary"`
	Questions map[string]QuestionStats `json:"questions"`
}

// Build aggregates normalized records into per-question statistics.
// Percentages for single choice are over answers given; for multiple
// choice they are over responses that selected at least one option, with
// repeated ids inside one response counted once.
func Build(survey *models.Survey, responses []models.ResponseRecord) SurveyReport {
	rep := SurveyReport{
		Summary: Summary{
			TotalResponses: len(responses),
			QuestionCount:  len(survey.Questions),
		},
		Questions: make(map[string]QuestionStats, len(survey.Questions)),
	}
	for _, q := range survey.Questions {
		switch q.Type {
		case models.TypeOpen:
			rep.Questions[q.ID] = openStats(q, responses)
		case models.TypeSingle:
			rep.Questions[q.ID] = singleStats(q, responses)
		case models.TypeMultiple:
			rep.Questions[q.ID] = multipleStats(q, responses)
		}
	}
	return rep
}

func openStats(q models.Question, responses []models.ResponseRecord) QuestionStats {
	st := QuestionStats{Type: q.Type, Rows: []OpenRow{}}
	for _, r := range responses {
		v, ok := r.Answers[q.ID]
		if !ok || strings.TrimSpace(v.Text) == "" {
			continue
		}
		st.TotalAnswered++
		st.Rows = append(st.Rows, OpenRow{ResponseID: r.ID, SubmittedAt: r.SubmittedAt, Value: v.Text})
	}
	return st
}

func singleStats(q models.Question, responses []models.ResponseRecord) QuestionStats {
	counts := make(map[string]int, len(q.Options))
	total := 0
	for _, r := range responses {
		v, ok := r.Answers[q.ID]
		if !ok || v.OptionID == "" {
			continue
		}
		total++
		counts[v.OptionID]++
	}
	st := QuestionStats{Type: q.Type, TotalAnswered: total}
	st.Table, st.Chart = distribution(q.Options, counts, total)
	return st
}

func multipleStats(q models.Question, responses []models.ResponseRecord) QuestionStats {
	counts := make(map[string]int, len(q.Options))
	respondents := 0
	for _, r := range responses {
		v, ok := r.Answers[q.ID]
		if !ok || len(v.OptionIDs) == 0 {
			continue
		}
		respondents++
		seen := make(map[string]bool, len(v.OptionIDs))
		for _, id := range v.OptionIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			counts[id]++
		}
	}
	st := QuestionStats{Type: q.Type, Respondents: respondents}
	st.Table, st.Chart = distribution(q.Options, counts, respondents)
	return st
}

// distribution lays out the table in option order, including options nobody
// picked, so charts keep a stable shape across refreshes.
func distribution(opts []models.Option, counts map[string]int, denom int) ([]OptionCount, *Chart) {
	table := make([]OptionCount, 0, len(opts))
	chart := &Chart{Labels: make([]string, 0, len(opts)), Values: make([]float64, 0, len(opts))}
	for _, opt := range opts {
		c := counts[opt.ID]
		pct := 0.0
		if denom > 0 {
			pct = round2(float64(c) / float64(denom) * 100)
		}
		table = append(table, OptionCount{OptionID: opt.ID, Value: opt.Text, Count: c, Percentage: pct})
		chart.Labels = append(chart.Labels, opt.Text)
		chart.Values = append(chart.Values, pct)
	}
	return table, chart
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
