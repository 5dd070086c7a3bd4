// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/survey-relay/handlers"
	"github.com/danielhkuo/survey-relay/metrics"
	"github.com/danielhkuo/survey-relay/middleware"
	"github.com/danielhkuo/survey-relay/responses"
	"github.com/danielhkuo/survey-relay/surveys"
)

func NewRouter(svc *responses.Service, schemas *surveys.Store) *http.ServeMux {
	mux := http.NewServeMux()

	responsesHandler := handlers.NewResponsesHandler(svc)
	surveysHandler := handlers.NewSurveysHandler(schemas)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Response operations
	mux.HandleFunc("GET /surveys/{id}/responses", middleware.WithLogging(responsesHandler.List))
	mux.HandleFunc("GET /surveys/{id}/responses/{rid}", middleware.WithLogging(responsesHandler.Get))
	mux.HandleFunc("POST /surveys/{id}/responses", middleware.WithLogging(responsesHandler.Submit))
	mux.HandleFunc("DELETE /surveys/{id}/responses", middleware.WithLogging(responsesHandler.Invalidate))
	mux.HandleFunc("GET /surveys/{id}/report", middleware.WithLogging(responsesHandler.Report))

	// Question-type vocabulary
	mux.HandleFunc("GET /question-types", middleware.WithLogging(surveysHandler.QuestionTypes))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("survey-relay API v1"))
	})

	return mux
}
