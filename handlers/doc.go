// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the relay API.

# Handler Types

Handlers wrap their service dependency and are created via constructors:

	h := handlers.NewResponsesHandler(svc)
	sh := handlers.NewSurveysHandler(schemas)

# Endpoints

	GET    /surveys/{id}/responses       → ResponsesHandler.List
	GET    /surveys/{id}/responses/{rid} → ResponsesHandler.Get
	POST   /surveys/{id}/responses       → ResponsesHandler.Submit
	DELETE /surveys/{id}/responses       → ResponsesHandler.Invalidate
	GET    /surveys/{id}/report          → ResponsesHandler.Report
	GET    /question-types               → SurveysHandler.QuestionTypes

Invalidate drops the survey's records, snapshot rows, and cached schema
in one sweep.

# Status Codes

Submit maps service errors to HTTP statuses:

	400 - invalid JSON or empty answers_by_question_id
	404 - unknown survey
	409 - survey closed
	422 - required answers missing (message names the questions)
	502 - backend submission failed

List always answers 200; an empty list may fill in on a retry once the
background load lands. Get answers 404 for ids not yet cached, after
kicking off the list load that may surface them.
*/
package handlers
