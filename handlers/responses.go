// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-relay/middleware"
	"github.com/danielhkuo/survey-relay/models"
	"github.com/danielhkuo/survey-relay/responses"
)

type ResponsesHandler struct {
	svc *responses.Service
}

func NewResponsesHandler(svc *responses.Service) *ResponsesHandler {
	return &ResponsesHandler{svc: svc}
}

// List handles GET /surveys/:id/responses
// Returns the cached records immediately; the first call for a survey
// kicks off the background load, so an empty list may fill in on a retry.
func (h *ResponsesHandler) List(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey id is required")
		return
	}

	items := h.svc.List(r.Context(), surveyID)
	middleware.JSONResponse(w, http.StatusOK, models.ListResponsesResponse{
		SurveyID: surveyID,
		Total:    len(items),
		Items:    items,
	})
}

// Get handles GET /surveys/:id/responses/:rid
func (h *ResponsesHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	responseID := r.PathValue("rid")
	if surveyID == "" || responseID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey id and response id are required")
		return
	}

	rec, ok := h.svc.Get(r.Context(), surveyID, responseID)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Response not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rec)
}

// Submit handles POST /surveys/:id/responses
func (h *ResponsesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey id is required")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Answers) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answers_by_question_id cannot be empty")
		return
	}

	rec, err := h.svc.Submit(r.Context(), surveyID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSurveyNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		case errors.Is(err, models.ErrSurveyClosed):
			middleware.ErrorResponse(w, http.StatusConflict, "Survey is closed and does not accept responses")
		default:
			if ve, ok := models.IsValidation(err); ok {
				middleware.ErrorResponse(w, http.StatusUnprocessableEntity, ve.Error())
				return
			}
			slog.Error("failed to relay submission", "survey_id", surveyID, "error", err)
			middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to submit response")
		}
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		Response: rec,
		Message:  "Response submitted successfully",
	})
}

// Report handles GET /surveys/:id/report
func (h *ResponsesHandler) Report(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey id is required")
		return
	}

	rep, err := h.svc.Report(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, models.ErrSurveyNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
			return
		}
		slog.Error("failed to build report", "survey_id", surveyID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rep)
}

// Invalidate handles DELETE /surveys/:id/responses
// Drops the relay's canonical records for a survey, used after the survey
// itself is deleted upstream.
func (h *ResponsesHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey id is required")
		return
	}

	h.svc.Invalidate(surveyID)
	slog.Info("survey responses invalidated", "survey_id", surveyID)
	w.WriteHeader(http.StatusNoContent)
}
