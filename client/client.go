// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/pollbox/models"
)

// maxErrorBody bounds how much of a non-2xx body is read when looking for an error message.
const maxErrorBody = 64 << 10

// APIError is returned for any non-2xx response from the poll service.
// Message holds the service's "error" field and is empty when the body
// did not have that shape.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pollbox: unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("pollbox: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the poll service JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the service rooted at baseURL, e.g. "http://localhost:4000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListPolls(ctx context.Context) ([]models.Poll, error) {
	var polls []models.Poll
	if err := c.do(ctx, http.MethodGet, "/api/polls", nil, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

func (c *Client) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	var poll models.Poll
	err := c.do(ctx, http.MethodGet, "/api/polls/"+url.PathEscape(id), nil, &poll)
	return poll, err
}

// CreatePoll sends question and options as given; the service trims and validates them.
func (c *Client) CreatePoll(ctx context.Context, question string, options []string) (models.Poll, error) {
	var poll models.Poll
	body := models.CreatePollRequest{Question: question, Options: options}
	err := c.do(ctx, http.MethodPost, "/api/polls", body, &poll)
	return poll, err
}

// Vote casts one vote and returns the poll as the service saw it afterwards.
func (c *Client) Vote(ctx context.Context, pollID, optionID string) (models.Poll, error) {
	var poll models.Poll
	body := models.VoteRequest{OptionID: optionID}
	err := c.do(ctx, http.MethodPost, "/api/polls/"+url.PathEscape(pollID)+"/vote", body, &poll)
	return poll, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("pollbox: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("pollbox: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pollbox: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("pollbox: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var payload models.ErrorResponse
	if json.Unmarshal(raw, &payload) == nil {
		apiErr.Message = strings.TrimSpace(payload.Error)
	}
	return apiErr
}
