// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/store"
)

// Client-facing messages
const (
	msgInvalidJSON      = "Invalid JSON"
	msgQuestionRequired = "Question is required"
	msgOptionsNotArray  = "Options must be an array"
	msgTooFewOptions    = "At least 2 options are required"
	msgPollNotFound     = "Poll not found"
	msgFetchPollsFailed = "Failed to fetch polls"
	msgFetchPollFailed  = "Failed to fetch poll"
	msgCreatePollFailed = "Failed to create poll"
	msgOptionIDRequired = "optionId is required"
	msgInvalidOption    = "Invalid option for this poll"
	msgRecordVoteFailed = "Failed to record vote"
)

// PollStore is the persistence the handlers need; *store.Store implements it
type PollStore interface {
	ListPolls(ctx context.Context, limit int) ([]models.Poll, error)
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	CreatePoll(ctx context.Context, question string, options []string) (models.Poll, error)
	Vote(ctx context.Context, pollID, optionID string) (models.Poll, error)
}

type PollHandler struct {
	store PollStore
}

func NewPollHandler(s PollStore) *PollHandler {
	return &PollHandler{store: s}
}

// ListPolls handles GET /api/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.ListPolls(r.Context(), models.ListPollLimit)
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgFetchPollsFailed)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /api/polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	poll, err := h.store.GetPoll(r.Context(), pollID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, msgPollNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgFetchPollFailed)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	question, options, problem := validateCreatePoll(req)
	if problem != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, problem)
		return
	}

	poll, err := h.store.CreatePoll(r.Context(), question, options)
	if err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgCreatePollFailed)
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "options", len(poll.Options))

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// validateCreatePoll checks question, then options, then the option count.
// It returns the trimmed question and non-blank trimmed option texts, or
// the message for the first rule that fails.
func validateCreatePoll(req models.CreatePollRequest) (string, []string, string) {
	question, ok := req.Question.(string)
	question = strings.TrimSpace(question)
	if !ok || question == "" {
		return "", nil, msgQuestionRequired
	}

	raw, ok := req.Options.([]any)
	if !ok {
		return "", nil, msgOptionsNotArray
	}

	options := make([]string, 0, len(raw))
	for _, o := range raw {
		// Non-string entries count as blank
		text, _ := o.(string)
		if text = strings.TrimSpace(text); text != "" {
			options = append(options, text)
		}
	}
	if len(options) < models.MinOptions {
		return "", nil, msgTooFewOptions
	}

	return question, options, ""
}
