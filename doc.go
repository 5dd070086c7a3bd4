// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the survey-relay server.

survey-relay sits in front of a survey backend and serves a canonical,
de-duplicated view of survey responses. Deployed backends differ in which
endpoints they expose and in the shape of their list payloads; the relay
absorbs those differences and exposes one stable API.

# Starting the Server

The server requires a backend URL via environment variable or CLI flag:

	BACKEND_URL=http://backend:4000 go run main.go

Or with flags:

	go run main.go -p 8080 -b "http://backend:4000"

# Configuration

Required settings:

  - BACKEND_URL (-b): Survey backend base URL

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - BACKEND_TOKEN (-token): Bearer token for the backend
  - SNAPSHOT_PATH (-snapshot): Local sqlite snapshot file
  - REQUEST_TIMEOUT_SECONDS (-timeout): Backend timeout (default: 15)

# Architecture

The server uses a service-based architecture with dependency injection:

  - transport: Backend client with endpoint fallback chains
  - envelope: Payload shape detection and record extraction
  - normalize: Raw answer blobs to canonical per-type values
  - cache: In-memory canonical record store with merge semantics
  - surveys: Read-through cache of survey schemas
  - responses: Service facade (list, get, submit, report)
  - report: Per-question aggregation
  - db: Optional sqlite snapshot persistence
  - handlers, router, middleware: HTTP surface
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
