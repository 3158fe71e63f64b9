// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package web renders the pollbox pages in the browser-facing binary.

Every page is rendered on the server from data fetched through a PollAPI,
normally a *client.Client pointed at the API server. There is no
JavaScript; dynamic parts of the create form post back and re-render.

# Pages

	GET  /                 - Home, links to create and browse
	GET  /create           - Empty create form (question + 2 options)
	POST /create           - action=add, action=remove-N or submit
	GET  /polls            - Recent polls with option and vote counts
	GET  /polls/{id}       - Vote form, or results if already voted
	POST /polls/{id}/vote  - Cast a vote and show results

# Create Form

The form is validated before the API is called:

  - blank question: "Please enter a question."
  - fewer than 2 non-blank options: "Please add at least 2 options."

Errors from the API are shown as the API worded them. On success the
browser is redirected (303) to the new poll.

# Voting Session

Polls voted on from this browser are listed in the pollbox_voted cookie,
signed with auth.Sign. A poll in the list shows results instead of the form
and a repeated vote is redirected back without calling the API. A cookie that
fails verification is ignored, as if the browser had not voted.

Only the most recent 50 poll ids are kept so the cookie stays small.

# Errors

A page that cannot load its data shows a full error page ("Poll not found"
for a missing poll). A failed vote re-renders the poll with an error banner
instead. Client errors from the API keep their status code; anything else
is reported as 502 Bad Gateway.
*/
package web
