// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollbox/client"
	"github.com/danielhkuo/pollbox/models"
)

// Validation and fallback messages shown to the user
const (
	msgEnterQuestion  = "Please enter a question."
	msgTooFewOptions  = "Please add at least 2 options."
	msgSelectOption   = "Please select an option."
	msgCreateFailed   = "Failed to create poll."
	msgLoadPollsError = "Failed to load polls"
	msgLoadPollError  = "Failed to load poll"
	msgVoteFailed     = "Failed to vote"
	msgPollNotFound   = "Poll not found"
)

type createPage struct {
	page
	Question  string
	Options   []string
	CanRemove bool
}

type listPage struct {
	page
	Polls []models.Poll
}

type pollPage struct {
	page
	Poll  models.Poll
	Voted bool
	Total int
}

func newCreatePage(question string, options []string, problem string) createPage {
	for len(options) < models.MinOptions {
		options = append(options, "")
	}
	return createPage{
		page:      page{Title: "Create a poll", Error: problem},
		Question:  question,
		Options:   options,
		CanRemove: len(options) > models.MinOptions,
	}
}

func newPollPage(poll models.Poll, voted bool, problem string) pollPage {
	return pollPage{
		page:  page{Title: poll.Question, Error: problem},
		Poll:  poll,
		Voted: voted,
		Total: poll.TotalVotes(),
	}
}

// Home handles GET /
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home.html", page{Title: "pollbox"})
}

// CreateForm handles GET /create
func (s *Server) CreateForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "create.html", newCreatePage("", nil, ""))
}

// CreateSubmit handles POST /create.
// The form posts back for "add" and "remove-N" so the option list can grow
// and shrink without scripting; any other action submits the poll.
func (s *Server) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "create.html", newCreatePage("", nil, "Invalid form"))
		return
	}

	question := r.PostFormValue("question")
	options := slices.Clone(r.PostForm["option"])
	action := r.PostFormValue("action")

	switch {
	case action == "add":
		options = append(options, "")
		s.render(w, http.StatusOK, "create.html", newCreatePage(question, options, ""))
		return
	case strings.HasPrefix(action, "remove-"):
		i, err := strconv.Atoi(strings.TrimPrefix(action, "remove-"))
		if err == nil && i >= 0 && i < len(options) && len(options) > models.MinOptions {
			options = slices.Delete(options, i, i+1)
		}
		s.render(w, http.StatusOK, "create.html", newCreatePage(question, options, ""))
		return
	}

	trimmedQuestion := strings.TrimSpace(question)
	var trimmed []string
	for _, opt := range options {
		if t := strings.TrimSpace(opt); t != "" {
			trimmed = append(trimmed, t)
		}
	}

	if trimmedQuestion == "" {
		s.render(w, http.StatusUnprocessableEntity, "create.html", newCreatePage(question, options, msgEnterQuestion))
		return
	}
	if len(trimmed) < models.MinOptions {
		s.render(w, http.StatusUnprocessableEntity, "create.html", newCreatePage(question, options, msgTooFewOptions))
		return
	}

	ctx, cancel := apiContext(r)
	defer cancel()

	poll, err := s.api.CreatePoll(ctx, trimmedQuestion, trimmed)
	if err != nil {
		slog.Warn("create poll failed", "error", err)
		s.render(w, statusFor(err), "create.html", newCreatePage(question, options, errorMessage(err, msgCreateFailed)))
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "options", len(poll.Options))
	http.Redirect(w, r, "/polls/"+url.PathEscape(poll.ID), http.StatusSeeOther)
}

// List handles GET /polls
func (s *Server) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := apiContext(r)
	defer cancel()

	polls, err := s.api.ListPolls(ctx)
	if err != nil {
		slog.Warn("list polls failed", "error", err)
		s.renderError(w, statusFor(err), errorMessage(err, msgLoadPollsError))
		return
	}

	s.render(w, http.StatusOK, "list.html", listPage{
		page:  page{Title: "Recent polls"},
		Polls: polls,
	})
}

// Detail handles GET /polls/{id}. A poll already voted on in this session
// shows results instead of the vote form.
func (s *Server) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ctx, cancel := apiContext(r)
	defer cancel()

	poll, err := s.api.GetPoll(ctx, id)
	if err != nil {
		s.renderLoadError(w, id, err)
		return
	}

	s.render(w, http.StatusOK, "poll.html", newPollPage(poll, s.hasVoted(r, id), ""))
}

// Vote handles POST /polls/{id}/vote.
// A repeat vote from the same session is ignored and the results are shown.
func (s *Server) Vote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if s.hasVoted(r, id) {
		http.Redirect(w, r, "/polls/"+url.PathEscape(id), http.StatusSeeOther)
		return
	}

	optionID := strings.TrimSpace(r.PostFormValue("optionId"))
	if optionID == "" {
		s.renderPollWithError(w, r, id, http.StatusUnprocessableEntity, msgSelectOption)
		return
	}

	ctx, cancel := apiContext(r)
	defer cancel()

	poll, err := s.api.Vote(ctx, id, optionID)
	if err != nil {
		slog.Warn("vote failed", "poll_id", id, "error", err)
		s.renderPollWithError(w, r, id, statusFor(err), errorMessage(err, msgVoteFailed))
		return
	}

	s.rememberVote(w, r, id)
	s.render(w, http.StatusOK, "poll.html", newPollPage(poll, true, ""))
}

// renderPollWithError keeps the poll on screen and adds an error banner.
// If the poll itself can no longer be loaded the full error page is shown.
func (s *Server) renderPollWithError(w http.ResponseWriter, r *http.Request, id string, status int, message string) {
	ctx, cancel := apiContext(r)
	defer cancel()

	poll, err := s.api.GetPoll(ctx, id)
	if err != nil {
		s.renderLoadError(w, id, err)
		return
	}
	s.render(w, status, "poll.html", newPollPage(poll, false, message))
}

func (s *Server) renderLoadError(w http.ResponseWriter, id string, err error) {
	if client.IsNotFound(err) {
		s.renderError(w, http.StatusNotFound, msgPollNotFound)
		return
	}
	slog.Warn("load poll failed", "poll_id", id, "error", err)
	s.renderError(w, statusFor(err), errorMessage(err, msgLoadPollError))
}
