// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the relay API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, schemas)

# Endpoints

Health and observability:

	GET /health
	GET /metrics

Response operations:

	GET    /surveys/{id}/responses       - Cached records, newest first
	GET    /surveys/{id}/responses/{rid} - One record
	POST   /surveys/{id}/responses       - Relay a submission
	DELETE /surveys/{id}/responses       - Drop the survey's records
	GET    /surveys/{id}/report          - Per-question statistics

Survey metadata:

	GET /question-types - Backend question-type vocabulary

All relay routes are wrapped with request logging.
*/
package router
