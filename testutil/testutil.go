// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollbox/cliparse"
	"github.com/danielhkuo/pollbox/db"
	"github.com/danielhkuo/pollbox/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call gets its own database. It is opened through db.Open, so it has
// the same single connection and pragmas as the server.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	return openTestDB(t, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
}

// SetupFileDB creates a SQLite database file in a temp dir, opened exactly
// the way the server opens a DATABASE_URL path. Closed on test cleanup.
func SetupFileDB(t *testing.T) *sql.DB {
	t.Helper()

	conn := openTestDB(t, filepath.Join(t.TempDir(), "pollbox.db"))
	t.Cleanup(func() { conn.Close() })
	return conn
}

func openTestDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4000,
		DatabaseURL:  "file::memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		CORSOrigins:  []string{"http://localhost:5173"},
		Env:          "prod",
	}
}

// CreateTestPoll inserts a poll without options and returns its ID
func CreateTestPoll(t *testing.T, db *sql.DB, question string, createdAt time.Time) string {
	t.Helper()

	pollID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO poll (id, question, created_at)
		VALUES ($1, $2, $3)
	`, pollID, question, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestOption appends an option to a poll and returns the option ID
func AddTestOption(t *testing.T, db *sql.DB, pollID, text string) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO option (id, poll_id, text, vote_count, position)
		VALUES ($1, $2, $3, 0, (SELECT COUNT(*) FROM option WHERE poll_id = $2))
	`, optionID, pollID, text)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// SetVoteCount overwrites an option's vote count
func SetVoteCount(t *testing.T, db *sql.DB, optionID string, count int) {
	t.Helper()

	if _, err := db.Exec(`UPDATE option SET vote_count = $1 WHERE id = $2`, count, optionID); err != nil {
		t.Fatalf("Failed to set vote count: %v", err)
	}
}

// VoteCount reads an option's vote count straight from the database
func VoteCount(t *testing.T, db *sql.DB, optionID string) int {
	t.Helper()

	var count int
	if err := db.QueryRow(`SELECT vote_count FROM option WHERE id = $1`, optionID).Scan(&count); err != nil {
		t.Fatalf("Failed to query vote count: %v", err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks status code and the error message of a JSON error response
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != message {
		t.Errorf("Expected error %q, got %q", message, resp.Error)
	}
}
