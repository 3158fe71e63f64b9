// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package client is a typed HTTP client for the poll service API.
//
// Every non-2xx response becomes an *APIError carrying the status code and
// the service's "error" message, when the body had one. IsNotFound checks
// for a 404. Transport failures are returned wrapped, so errors.Is works
// with context.Canceled and friends.
//
//	c := client.New("http://localhost:4000")
//	poll, err := c.GetPoll(ctx, id)
//	if client.IsNotFound(err) { ... }
package client
