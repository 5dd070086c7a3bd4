// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package responses is the service facade over the cache, transport, and
normalization layers.

# Read Path

List returns the cached records immediately; the first call per survey
triggers a background load. Get serves one cached record and lazily
fetches its detail when the cached copy has no answers yet. Reads are
snapshots and may briefly lag the backend.

# Submit Path

Submit runs the full pipeline synchronously up to the backend call:

	schema lookup → Validate → BuildPayload → transport.SubmitResponse

Validation collects every missing required question into one error. On
backend success the echoed record (or, when the echo is unusable, the
client's own input) is normalized and inserted optimistically; a
background list refresh then reconciles with the authoritative state.
Transport errors propagate to the caller - a submission the backend did
not record is never faked locally.

# Background Work

All background fetches run detached from the caller's context
(context.WithoutCancel) and are tracked by a WaitGroup; Wait blocks until
they settle, used at shutdown and by tests.
*/
package responses
