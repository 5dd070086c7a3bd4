// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cache holds the relay's canonical in-memory record store.

# Merge Semantics

All writes go through Merge (UpsertDetail is a one-record Merge), which
unions a batch into the survey's list with these guarantees:

  - De-duplication by response id
  - A populated answer set is never overwritten by an empty one
  - The first-seen submission timestamp wins
  - An empty batch is a no-op
  - The list is re-sorted newest first, ties broken by descending id

These make concurrent and out-of-order fetches safe: a stale list refresh
landing after a detail fetch cannot erase the detail's answers.

# Load Markers

BeginLoad/FinishLoad implement a per-survey once-per-session load gate.
BeginLoad claims an in-flight marker before the fetch resolves, so
concurrent readers trigger at most one backend fetch; FinishLoad rolls
the marker back on failure so the next read retries.
*/
package cache
