// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/danielhkuo/pollbox/auth"
)

const (
	votedCookie = "pollbox_voted"
	// votedLimit keeps the signed cookie well under the 4 KB browser limit.
	votedLimit = 50
)

// votedPolls returns the poll ids recorded in the session cookie.
// A missing or tampered cookie reads as no votes.
func (s *Server) votedPolls(r *http.Request) []string {
	c, err := r.Cookie(votedCookie)
	if err != nil {
		return nil
	}

	value, err := auth.Verify(c.Value, s.secret)
	if err != nil {
		slog.Debug("discarding session cookie", "error", err)
		return nil
	}
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func (s *Server) hasVoted(r *http.Request, pollID string) bool {
	return slices.Contains(s.votedPolls(r), pollID)
}

// rememberVote adds pollID to the session cookie, dropping the oldest ids
// past votedLimit.
func (s *Server) rememberVote(w http.ResponseWriter, r *http.Request, pollID string) {
	ids := s.votedPolls(r)
	if slices.Contains(ids, pollID) {
		return
	}
	ids = append(ids, pollID)
	if len(ids) > votedLimit {
		ids = ids[len(ids)-votedLimit:]
	}

	http.SetCookie(w, &http.Cookie{
		Name:     votedCookie,
		Value:    auth.Sign(strings.Join(ids, ","), s.secret),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
