// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Opening

Open wraps sql.Open. For the sqlite driver it appends any of these pragmas
the DSN does not already set, and limits the pool to one connection:

	_pragma=busy_timeout(5000)
	_pragma=journal_mode(WAL)
	_pragma=foreign_keys(1)

SQLite allows one writer at a time; with a single pooled connection,
concurrent vote increments wait for the connection instead of failing with
SQLITE_BUSY. Foreign keys are off by default in SQLite and must be enabled
per connection. Postgres DSNs (postgres, pgx) pass through unchanged.

	conn, err := db.Open(cfg.DriverName(), cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on SQLite and PostgreSQL.

# Tables

  - poll: id, question, created_at
  - option: id, poll_id, text, vote_count, position

# Relationships

	poll 1──* option

option.poll_id references poll.id with ON DELETE CASCADE. Nothing in the
application deletes polls; the cascade only matters for manual cleanup.

option.position keeps options in the order they were submitted.
option.vote_count has a CHECK (vote_count >= 0) constraint.

# Indexes

  - poll.created_at (list newest first)
  - option.poll_id
*/
package db
