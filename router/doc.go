// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll API.

# Route Registration

NewRouter builds the API handler from a store and the server config:

	handler := router.NewRouter(store.New(db), cfg)

# Endpoints

Health:

	GET /health → {"status": "ok", "timestamp": "..."}

Polls:

	GET  /api/polls           - List newest 50 polls
	GET  /api/polls/{id}      - Get one poll
	POST /api/polls           - Create poll
	POST /api/polls/{id}/vote - Cast a vote

# Middleware Chain

Outermost first:

  - chi RequestID: tags each request with an id used in log lines
  - chi Recoverer: turns handler panics into 500s
  - CORS: allowed origins from cfg.CORSOrigins, answers preflight
  - WithLogging: per-route request logging
*/
package router
