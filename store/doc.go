// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store maps poll and option rows to models types.

	s := store.New(conn)
	polls, err := s.ListPolls(ctx, models.ListPollLimit)

# Operations

  - ListPolls: newest first, options embedded, loaded with one IN query
  - GetPoll: single poll with options, ErrNotFound when absent
  - CreatePoll: poll and options inserted in one transaction
  - Vote: atomic increment, then re-read of the whole poll

# Vote Counting

A vote is one statement:

	UPDATE option SET vote_count = vote_count + 1
	WHERE id = $1 AND poll_id = $2

The poll_id condition makes an option from another poll match nothing, which
Vote reports as ErrInvalidOption without touching any row. The increment runs
inside the database, so concurrent votes never overwrite each other.

The poll returned by Vote is read after the increment. It always includes this
vote, and may include others that landed in between.

# Drivers

All queries use $n placeholders and run unchanged on modernc.org/sqlite,
github.com/lib/pq and github.com/jackc/pgx/v5/stdlib.
*/
package store
