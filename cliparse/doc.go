// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first when present.

# Config Fields

  - Port: Server listen port (default: 8080)
  - BackendURL: Survey backend base URL (required)
  - BackendToken: Bearer token for the backend
  - SnapshotPath: Local snapshot file (empty disables persistence)
  - RequestTimeout: Backend request timeout (default: 15s)

# CLI Flags

	-p        Server port
	-b        Backend base URL
	-token    Backend bearer token
	-snapshot Snapshot file path
	-timeout  Backend timeout in seconds

# Environment Variables

Flags fall back to environment variables:

	PORT                    → -p
	BACKEND_URL             → -b
	BACKEND_TOKEN           → -token
	SNAPSHOT_PATH           → -snapshot
	REQUEST_TIMEOUT_SECONDS → -timeout

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if BACKEND_URL is missing or a numeric
variable does not parse.
*/
package cliparse
