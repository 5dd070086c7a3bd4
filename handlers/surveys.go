// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-relay/middleware"
	"github.com/danielhkuo/survey-relay/surveys"
)

// TypeSource supplies the backend's question-type vocabulary.
type TypeSource interface {
	Types(ctx context.Context) ([]surveys.QuestionType, error)
}

type SurveysHandler struct {
	types TypeSource
}

func NewSurveysHandler(types TypeSource) *SurveysHandler {
	return &SurveysHandler{types: types}
}

// QuestionTypes handles GET /question-types
// Serves the cached vocabulary; the first call fetches it from the backend.
func (h *SurveysHandler) QuestionTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.types.Types(r.Context())
	if err != nil {
		slog.Error("failed to fetch question types", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to fetch question types")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, types)
}
