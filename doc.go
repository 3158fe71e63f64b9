// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollbox API server.

pollbox is a minimal polling service: create a poll with a question and at
least two options, share it, and let people cast one vote each. Results are
shown as counts and rounded percentages. The browser-facing pages live in a
separate binary, cmd/pollweb, which talks to this server over HTTP.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL="file:pollbox.db?_pragma=foreign_keys(1)" go run .

Or with flags:

	go run . -p 4000 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string

Optional settings:

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): sqlite, postgres (lib/pq) or pgx (default: sqlite)
  - CORS_ORIGINS: comma-separated allowed origins
    (default: http://localhost:5173,http://127.0.0.1:5173)
  - APP_ENV (-env): local, dev or prod; selects the log format (default: local)

SQLite connections should enable foreign keys with the _pragma parameter so
options cannot outlive their poll.

# Architecture

  - handlers: HTTP request handlers (polls, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - store: SQL data mapping for polls and options
  - models: Request/response types
  - db: Schema creation
  - cliparse: Configuration parsing
  - logger: slog handler selection

See package documentation for each component.
*/
package main
