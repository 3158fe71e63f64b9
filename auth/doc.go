// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth signs and verifies small values carried by the client, such as
the web session cookie that remembers which polls a browser has voted on.

# Signed Values

Sign encodes the value with URL-safe base64 and appends an HMAC-SHA256
signature keyed by the server secret:

	token := auth.Sign("poll-a,poll-b", secret)
	value, err := auth.Verify(token, secret)

The token is safe to put in a cookie. It is not encrypted: anyone holding it
can decode the value, but nobody without the secret can produce a valid one.

# Errors

	ErrInvalidToken     - token is not "value.signature" or value is not base64
	ErrInvalidSignature - signature does not match (tampered or wrong secret)

Callers treat both the same way: the value is discarded.

# Security

Signatures are compared with hmac.Equal so comparison time does not depend on
how many leading bytes match.
*/
package auth
