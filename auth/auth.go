// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import "net/http"

// Transport is an http.RoundTripper that attaches the backend bearer token
// to every outgoing request. An empty token leaves requests untouched, so
// the same wiring serves unauthenticated backends.
type Transport struct {
	Token string
	Base  http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Token == "" {
		return base.RoundTrip(req)
	}
	// Per RoundTripper contract the request must not be mutated in place.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.Token)
	return base.RoundTrip(clone)
}
