// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the poll API.

# Handler Types

Each handler is a struct holding a PollStore:

  - PollHandler: list, get and create polls
  - VotingHandler: cast a vote

	pollHandler := handlers.NewPollHandler(store.New(db))

PollStore is a narrow interface over *store.Store, so tests can swap in a
store that fails on demand.

# Endpoints

	GET  /api/polls           → ListPolls (newest 50, options embedded)
	GET  /api/polls/{id}      → GetPoll
	POST /api/polls           → CreatePoll
	POST /api/polls/{id}/vote → Vote

# Validation

CreatePoll checks, in order:

 1. question is a string that is non-empty after trimming
 2. options is a JSON array
 3. at least 2 options remain after trimming and dropping blanks

Vote requires optionId, and the option must belong to the poll in the path.

# Errors

Bad input answers 400 with a specific message, a missing poll answers 404,
and any other store failure is logged and answers 500 with a generic
message. Store error text never reaches the client.

	{"error": "Invalid option for this poll"}
*/
package handlers
