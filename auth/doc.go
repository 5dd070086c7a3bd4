// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth attaches backend credentials to outgoing requests.

Transport is an http.RoundTripper that sets the Authorization header:

	client := transport.New(cfg.BackendURL, &auth.Transport{Token: cfg.BackendToken}, timeout)

An empty token is a no-op, so unauthenticated backends use the same
wiring.
*/
package auth
