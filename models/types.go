package models

import (
	"math"
	"time"
)

// Validation limits
const (
	MinOptions    = 2
	ListPollLimit = 50
)

// Request types

// Fields are decoded loosely so the handler can tell a missing
// or mistyped value apart from an empty one.
type CreatePollRequest struct {
	Question any `json:"question"`
	Options  any `json:"options"`
}

type VoteRequest struct {
	OptionID any `json:"optionId"`
}

// Response types

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"createdAt"`
	Options   []Option  `json:"options"`
}

type Option struct {
	ID        string `json:"id"`
	PollID    string `json:"pollId"`
	Text      string `json:"text"`
	VoteCount int    `json:"voteCount"`
}

// TotalVotes sums the vote counts of all options
func (p Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.VoteCount
	}
	return total
}

// Percent returns count as a whole-number share of total, rounded to
// the nearest integer. A poll with no votes shows 0 for every option.
func Percent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
