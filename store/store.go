// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbox/models"
)

var (
	ErrNotFound      = errors.New("poll not found")
	ErrInvalidOption = errors.New("invalid option for this poll")
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListPolls returns at most limit polls, newest first, with options embedded
func (s *Store) ListPolls(ctx context.Context, limit int) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, created_at
		FROM poll
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	index := make(map[string]int)
	for rows.Next() {
		p := models.Poll{Options: []models.Option{}}
		if err := rows.Scan(&p.ID, &p.Question, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		index[p.ID] = len(polls)
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}

	if len(polls) == 0 {
		return polls, nil
	}

	ids := make([]string, len(polls))
	for i, p := range polls {
		ids[i] = p.ID
	}
	options, err := loadOptions(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	for _, opt := range options {
		i := index[opt.PollID]
		polls[i].Options = append(polls[i].Options, opt)
	}

	return polls, nil
}

// GetPoll returns ErrNotFound when no poll has the given id
func (s *Store) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	return getPoll(ctx, s.db, id)
}

// CreatePoll inserts a poll and its options in one transaction.
// Inputs are stored as given; callers validate and trim.
func (s *Store) CreatePoll(ctx context.Context, question string, texts []string) (models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	poll := models.Poll{
		ID:       uuid.NewString(),
		Question: question,
		// Microseconds are the finest precision PostgreSQL keeps
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Options:   make([]models.Option, 0, len(texts)),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, question, created_at)
		VALUES ($1, $2, $3)
	`, poll.ID, poll.Question, poll.CreatedAt)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, text := range texts {
		opt := models.Option{
			ID:     uuid.NewString(),
			PollID: poll.ID,
			Text:   text,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO option (id, poll_id, text, vote_count, position)
			VALUES ($1, $2, $3, 0, $4)
		`, opt.ID, opt.PollID, opt.Text, i)
		if err != nil {
			return models.Poll{}, fmt.Errorf("failed to insert option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to commit poll: %w", err)
	}

	return poll, nil
}

// Vote adds one vote to optionID and returns the poll as re-read afterwards.
// The increment is a single UPDATE scoped to pollID, so an option from
// another poll matches no row and nothing changes. Votes landing between
// the UPDATE and the re-read show up in the returned poll.
func (s *Store) Vote(ctx context.Context, pollID, optionID string) (models.Poll, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE option
		SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`, optionID, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to increment vote count: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return models.Poll{}, ErrInvalidOption
	}

	poll, err := getPoll(ctx, s.db, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to reload poll after vote: %w", err)
	}

	return poll, nil
}

func getPoll(ctx context.Context, db *sql.DB, id string) (models.Poll, error) {
	var p models.Poll
	err := db.QueryRowContext(ctx, `
		SELECT id, question, created_at
		FROM poll
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Question, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	p.Options, err = loadOptions(ctx, db, []string{p.ID})
	if err != nil {
		return models.Poll{}, err
	}

	return p, nil
}

// loadOptions fetches the options of every listed poll in one query,
// grouped by poll and in submission order within a poll
func loadOptions(ctx context.Context, db *sql.DB, pollIDs []string) ([]models.Option, error) {
	placeholders := make([]string, len(pollIDs))
	args := make([]any, len(pollIDs))
	for i, id := range pollIDs {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, poll_id, text, vote_count
		FROM option
		WHERE poll_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY poll_id, position
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	return options, nil
}
