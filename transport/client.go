// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/survey-relay/models"
)

// Client talks to the survey backend. List and detail lookups try the
// endpoint generations in order, newest first, because deployed backends
// differ in which routes they expose; the decoded body is returned as-is
// and shape detection happens upstream.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for the backend at baseURL. rt may be nil; pass an
// auth.Transport to attach bearer credentials.
func New(baseURL string, rt http.RoundTripper, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Transport: rt, Timeout: timeout},
	}
}

// ListResponses fetches the response list for a survey. Endpoint fallback
// chain: the grouped view, the classic per-survey list, then the flat
// listing filtered by survey_id.
func (c *Client) ListResponses(ctx context.Context, surveyID string, params url.Values) (any, error) {
	paths := []string{
		"/encuestas/" + url.PathEscape(surveyID) + "/respuestas/vista",
		"/encuestas/" + url.PathEscape(surveyID) + "/respuestas",
		"/respuestas",
	}
	var lastErr error
	for i, path := range paths {
		q := cloneValues(params)
		if i == len(paths)-1 {
			q.Set("survey_id", surveyID)
		}
		data, err := c.getJSON(ctx, path, q)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("list responses for survey %s: %w", surveyID, lastErr)
}

// GetResponseDetail fetches one response. Falls back to the bare detail
// route for backends without per-survey detail endpoints.
func (c *Client) GetResponseDetail(ctx context.Context, surveyID, responseID string) (any, error) {
	data, err := c.getJSON(ctx, "/encuestas/"+url.PathEscape(surveyID)+"/respuestas/"+url.PathEscape(responseID), nil)
	if err == nil {
		return data, nil
	}
	data, err2 := c.getJSON(ctx, "/respuestas/"+url.PathEscape(responseID), nil)
	if err2 == nil {
		return data, nil
	}
	return nil, fmt.Errorf("response detail %s: %w", responseID, err)
}

// SubmitResponse posts a canonical submission payload and returns the
// backend's echo. Errors here are not recoverable locally; the caller must
// know the submission was not recorded.
func (c *Client) SubmitResponse(ctx context.Context, surveyID string, payload models.SubmissionPayload) (any, error) {
	data, err := c.postJSON(ctx, "/encuestas/"+url.PathEscape(surveyID)+"/respuestas", payload)
	if err != nil {
		return nil, fmt.Errorf("submit response for survey %s: %w", surveyID, err)
	}
	return data, nil
}

// ListSurveys fetches the survey catalog.
func (c *Client) ListSurveys(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/encuestas", nil)
}

// GetSurveyDetail fetches one survey with its questions and options.
func (c *Client) GetSurveyDetail(ctx context.Context, surveyID string) (any, error) {
	return c.getJSON(ctx, "/encuestas/"+url.PathEscape(surveyID)+"/detalle", nil)
}

// QuestionTypes fetches the backend's question-type vocabulary.
func (c *Client) QuestionTypes(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/tipos-pregunta", nil)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values) (any, error) {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (any, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (any, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Drain a little of the body for the error message; backends vary
		// between JSON errors and plain text.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("%s %s: backend returned %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		if err == io.EOF {
			return nil, nil // empty body, not an error
		}
		return nil, fmt.Errorf("%s %s: decode body: %w", req.Method, req.URL.Path, err)
	}
	return data, nil
}

func cloneValues(params url.Values) url.Values {
	out := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			out.Add(k, v)
		}
	}
	return out
}
