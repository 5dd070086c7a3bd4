// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report aggregates normalized response records into per-question
// statistics: row listings for open questions, distribution tables and
// chart series for choice questions. Tables keep every option, zero counts
// included, so charts hold a stable shape across refreshes.
package report
