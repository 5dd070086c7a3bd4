// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package transport is the HTTP client for the survey backend.

Deployed backends differ in which endpoint generations they expose, so
list and detail lookups walk a fallback chain:

	GET /encuestas/{id}/respuestas/vista   (grouped view)
	GET /encuestas/{id}/respuestas         (classic list)
	GET /respuestas?survey_id={id}         (flat listing)

Responses are decoded to untyped JSON and returned as-is; shape detection
belongs to the envelope package. An empty 2xx body decodes to nil without
error. Submissions never fall back - an error from the submit endpoint
means the response was not recorded, and the caller must know that.
*/
package transport
