// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level (remote) and completion at info level
(status, bytes, duration_ms). Every line carries method, path and the chi
request id when chimw.RequestID runs in front of the mux.

# CORS Middleware

Enable cross-origin requests for the configured frontend origins:

	handler := middleware.CORS(cfg.CORSOrigins)(mux)

Allows methods GET, POST, OPTIONS and the Content-Type header. Preflight
requests are answered with 204. An entry of "*" allows every origin.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Question is required")

Error bodies have the shape {"error": "..."}.

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

An empty body or a JSON array leaves req at its zero value so the handler's
validation answers ("Question is required", "optionId is required").
Malformed JSON and bare scalars return an error.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
