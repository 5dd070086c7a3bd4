// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package surveys caches survey schemas read from the backend.

The relay never mutates survey definitions; it reads them to drive answer
normalization, submission validation, and reporting. The catalog is
fetched once per session and question detail lazily per survey. When the
detail endpoint fails but the catalog knows the survey, the questionless
catalog entry is served instead of an error - validation then simply has
nothing to check.

Mapping functions translate backend DTOs (mixed English/Spanish field
names and type keys) into the domain model; unknown question types
degrade to open text.
*/
package surveys
