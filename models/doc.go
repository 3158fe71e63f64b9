// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options
  - VoteRequest: optionId

Request fields are typed as any so handlers can distinguish a missing
field, a field of the wrong JSON type, and an empty value.

# Response Types

  - HealthResponse: status, timestamp
  - ErrorResponse: error

# Domain Types

  - Poll: id, question, createdAt, options
  - Option: id, pollId, text, voteCount

Poll and Option are returned directly as JSON:

	{
	  "id": "…",
	  "question": "Lunch?",
	  "createdAt": "2026-01-01T12:00:00Z",
	  "options": [{"id": "…", "pollId": "…", "text": "Pizza", "voteCount": 3}]
	}

# Constants

	MinOptions    = 2   // options required at creation
	ListPollLimit = 50  // polls returned by the list endpoint
*/
package models
