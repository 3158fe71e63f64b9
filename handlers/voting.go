// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/store"
)

type VotingHandler struct {
	store PollStore
}

func NewVotingHandler(s PollStore) *VotingHandler {
	return &VotingHandler{store: s}
}

// Vote handles POST /api/polls/{id}/vote
// Responds with the whole poll as read after the increment.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	optionID, problem := voteOptionID(req.OptionID)
	if problem != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, problem)
		return
	}

	poll, err := h.store.Vote(r.Context(), pollID, optionID)
	if errors.Is(err, store.ErrInvalidOption) {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidOption)
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "poll_id", pollID, "option_id", optionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgRecordVoteFailed)
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "option_id", optionID)

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// voteOptionID treats absent, null, "", false and 0 as missing.
// Any other non-string value can never name an option.
func voteOptionID(v any) (string, string) {
	switch id := v.(type) {
	case nil:
		return "", msgOptionIDRequired
	case string:
		if id == "" {
			return "", msgOptionIDRequired
		}
		return id, ""
	case bool:
		if !id {
			return "", msgOptionIDRequired
		}
	case float64:
		if id == 0 {
			return "", msgOptionIDRequired
		}
	}
	return "", msgInvalidOption
}
