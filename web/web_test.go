// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollbox/auth"
	"github.com/danielhkuo/pollbox/client"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/router"
	"github.com/danielhkuo/pollbox/store"
	"github.com/danielhkuo/pollbox/testutil"
)

const testSecret = "test-secret"

// ---------------------------------------------------------------------------
// fakeAPI
// ---------------------------------------------------------------------------

type createCall struct {
	question string
	options  []string
}

// fakeAPI is an in-memory PollAPI. Setting one of the *Err fields makes that
// operation fail without touching state.
type fakeAPI struct {
	polls map[string]models.Poll

	listErr   error
	getErr    error
	createErr error
	voteErr   error

	creates []createCall
	votes   int
}

func newFakeAPI(polls ...models.Poll) *fakeAPI {
	f := &fakeAPI{polls: make(map[string]models.Poll)}
	for _, p := range polls {
		f.polls[p.ID] = p
	}
	return f
}

func (f *fakeAPI) ListPolls(context.Context) ([]models.Poll, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	polls := make([]models.Poll, 0, len(f.polls))
	for _, p := range f.polls {
		polls = append(polls, p)
	}
	return polls, nil
}

func (f *fakeAPI) GetPoll(_ context.Context, id string) (models.Poll, error) {
	if f.getErr != nil {
		return models.Poll{}, f.getErr
	}
	p, ok := f.polls[id]
	if !ok {
		return models.Poll{}, &client.APIError{StatusCode: http.StatusNotFound, Message: "Poll not found"}
	}
	return p, nil
}

func (f *fakeAPI) CreatePoll(_ context.Context, question string, options []string) (models.Poll, error) {
	f.creates = append(f.creates, createCall{question: question, options: options})
	if f.createErr != nil {
		return models.Poll{}, f.createErr
	}
	p := models.Poll{ID: "new-poll", Question: question, CreatedAt: time.Now()}
	for i, text := range options {
		p.Options = append(p.Options, models.Option{ID: "o" + string(rune('1'+i)), PollID: p.ID, Text: text})
	}
	f.polls[p.ID] = p
	return p, nil
}

func (f *fakeAPI) Vote(_ context.Context, pollID, optionID string) (models.Poll, error) {
	f.votes++
	if f.voteErr != nil {
		return models.Poll{}, f.voteErr
	}
	p := f.polls[pollID]
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			p.Options[i].VoteCount++
			return p, nil
		}
	}
	return models.Poll{}, &client.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid option for this poll"}
}

func lunchPoll() models.Poll {
	return models.Poll{
		ID:        "p1",
		Question:  "Favorite lunch?",
		CreatedAt: time.Now().Add(-3 * time.Minute),
		Options: []models.Option{
			{ID: "a", PollID: "p1", Text: "Pizza", VoteCount: 1},
			{ID: "b", PollID: "p1", Text: "Sushi", VoteCount: 2},
			{ID: "c", PollID: "p1", Text: "Tacos", VoteCount: 4},
		},
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func newTestServer(t *testing.T, api PollAPI) http.Handler {
	t.Helper()
	s, err := New(api, testSecret)
	require.NoError(t, err)
	return s.Routes()
}

func get(h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postForm(h http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func votedCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == votedCookie {
			return c
		}
	}
	t.Fatalf("response did not set %s cookie", votedCookie)
	return nil
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(newFakeAPI(), "")
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// Home
// ---------------------------------------------------------------------------

func TestHome(t *testing.T) {
	h := newTestServer(t, newFakeAPI())

	w := get(h, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	require.Contains(t, w.Body.String(), `href="/create"`)
	require.Contains(t, w.Body.String(), `href="/polls"`)

	require.Equal(t, http.StatusNotFound, get(h, "/nope").Code)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreateForm(t *testing.T) {
	h := newTestServer(t, newFakeAPI())

	w := get(h, "/create")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "What would you like to ask?")
	require.Contains(t, body, `placeholder="Option 1"`)
	require.Contains(t, body, `placeholder="Option 2"`)
	require.NotContains(t, body, `placeholder="Option 3"`)
	require.Equal(t, 2, strings.Count(body, "disabled>Remove"))
}

func TestCreateSubmit_AddAndRemove(t *testing.T) {
	api := newFakeAPI()
	h := newTestServer(t, api)

	w := postForm(h, "/create", url.Values{
		"question": {"Pick one"},
		"option":   {"A", "B"},
		"action":   {"add"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `placeholder="Option 3"`)
	require.Contains(t, body, `value="Pick one"`)
	require.NotContains(t, body, "disabled>Remove")

	w = postForm(h, "/create", url.Values{
		"question": {"Pick one"},
		"option":   {"A", "B", "C"},
		"action":   {"remove-0"},
	})
	body = w.Body.String()
	require.NotContains(t, body, `value="A"`)
	require.Contains(t, body, `value="B"`)
	require.Contains(t, body, `value="C"`)
	require.NotContains(t, body, `placeholder="Option 3"`)

	// At the minimum, remove does nothing
	w = postForm(h, "/create", url.Values{
		"option": {"A", "B"},
		"action": {"remove-1"},
	})
	require.Contains(t, w.Body.String(), `value="B"`)

	require.Empty(t, api.creates, "add/remove must not call the service")
}

func TestCreateSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{
			name:    "empty question",
			form:    url.Values{"question": {"   "}, "option": {"A", "B"}},
			message: "Please enter a question.",
		},
		{
			name:    "one option",
			form:    url.Values{"question": {"Test question?"}, "option": {"Only one", ""}},
			message: "Please add at least 2 options.",
		},
		{
			name:    "blank options",
			form:    url.Values{"question": {"Test question?"}, "option": {" ", "\t"}},
			message: "Please add at least 2 options.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			h := newTestServer(t, api)

			w := postForm(h, "/create", tt.form)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			require.Contains(t, w.Body.String(), tt.message)
			require.Empty(t, api.creates)
		})
	}
}

func TestCreateSubmit_Success(t *testing.T) {
	api := newFakeAPI()
	h := newTestServer(t, api)

	w := postForm(h, "/create", url.Values{
		"question": {"  Best editor?  "},
		"option":   {" vim ", "", "emacs"},
		"action":   {"create"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/polls/new-poll", w.Header().Get("Location"))

	require.Len(t, api.creates, 1)
	require.Equal(t, "Best editor?", api.creates[0].question)
	require.Equal(t, []string{"vim", "emacs"}, api.creates[0].options)
}

func TestCreateSubmit_ServiceError(t *testing.T) {
	api := newFakeAPI()
	h := newTestServer(t, api)
	form := url.Values{"question": {"Q"}, "option": {"A", "B"}}

	api.createErr = &client.APIError{StatusCode: http.StatusBadRequest, Message: "At least 2 options are required"}
	w := postForm(h, "/create", form)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "At least 2 options are required")
	require.Contains(t, w.Body.String(), `value="Q"`)

	api.createErr = errors.New("connection refused")
	w = postForm(h, "/create", form)
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, w.Body.String(), "Failed to create poll.")
	require.NotContains(t, w.Body.String(), "connection refused")
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		w := get(newTestServer(t, newFakeAPI()), "/polls")
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "No polls yet.")
	})

	t.Run("populated", func(t *testing.T) {
		w := get(newTestServer(t, newFakeAPI(lunchPoll())), "/polls")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, `href="/polls/p1"`)
		require.Contains(t, body, "Favorite lunch?")
		require.Contains(t, body, "3 options")
		require.Contains(t, body, "7 votes")
		require.Contains(t, body, "3 minutes ago")
		require.NotContains(t, body, "No polls yet.")
	})

	t.Run("error", func(t *testing.T) {
		api := newFakeAPI(lunchPoll())
		api.listErr = &client.APIError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch polls"}
		w := get(newTestServer(t, api), "/polls")
		require.Equal(t, http.StatusBadGateway, w.Code)
		require.Contains(t, w.Body.String(), "Failed to fetch polls")
		require.NotContains(t, w.Body.String(), "No polls yet.")

		api.listErr = errors.New("dial tcp: refused")
		w = get(newTestServer(t, api), "/polls")
		require.Contains(t, w.Body.String(), "Failed to load polls")
	})
}

// ---------------------------------------------------------------------------
// Detail and vote
// ---------------------------------------------------------------------------

func TestDetail_ShowsVoteForm(t *testing.T) {
	w := get(newTestServer(t, newFakeAPI(lunchPoll())), "/polls/p1")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "Favorite lunch?")
	require.Contains(t, body, `action="/polls/p1/vote"`)
	require.Equal(t, 3, strings.Count(body, `type="radio"`))
	require.NotContains(t, body, "Results")
}

func TestDetail_LoadErrors(t *testing.T) {
	h := newTestServer(t, newFakeAPI())
	w := get(h, "/polls/missing")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Poll not found")
	require.Contains(t, w.Body.String(), "Back to home")

	api := newFakeAPI(lunchPoll())
	api.getErr = errors.New("timeout")
	w = get(newTestServer(t, api), "/polls/p1")
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, w.Body.String(), "Failed to load poll")
}

func TestVote_ShowsResultsAndRemembers(t *testing.T) {
	api := newFakeAPI(lunchPoll())
	h := newTestServer(t, api)

	w := postForm(h, "/polls/p1/vote", url.Values{"optionId": {"c"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "Results (total votes: 8)")
	require.Contains(t, body, "1 votes (13%)")
	require.Contains(t, body, "2 votes (25%)")
	require.Contains(t, body, "5 votes (63%)")
	require.NotContains(t, body, `type="radio"`)
	require.Equal(t, 1, api.votes)

	cookie := votedCookieFrom(t, w)
	require.True(t, cookie.HttpOnly)

	// Same session: results, no form
	w = get(h, "/polls/p1", cookie)
	require.Contains(t, w.Body.String(), "Results (total votes: 8)")
	require.NotContains(t, w.Body.String(), `type="radio"`)

	// A repeated vote is ignored
	w = postForm(h, "/polls/p1/vote", url.Values{"optionId": {"a"}}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/polls/p1", w.Header().Get("Location"))
	require.Equal(t, 1, api.votes)

	// A fresh session sees the form again
	w = get(h, "/polls/p1")
	require.Contains(t, w.Body.String(), `type="radio"`)
}

func TestVote_ZeroTotalShowsZeroPercent(t *testing.T) {
	api := newFakeAPI(models.Poll{
		ID:       "p2",
		Question: "Empty?",
		Options: []models.Option{
			{ID: "x", PollID: "p2", Text: "X"},
			{ID: "y", PollID: "p2", Text: "Y"},
		},
	})
	h := newTestServer(t, api)

	w := postForm(h, "/polls/p2/vote", url.Values{"optionId": {"x"}})
	cookie := votedCookieFrom(t, w)

	api.polls["p2"] = models.Poll{ID: "p2", Question: "Empty?", Options: []models.Option{{ID: "x", Text: "X"}, {ID: "y", Text: "Y"}}}
	w = get(h, "/polls/p2", cookie)
	require.Contains(t, w.Body.String(), "0 votes (0%)")
}

func TestVote_Errors(t *testing.T) {
	t.Run("no option selected", func(t *testing.T) {
		api := newFakeAPI(lunchPoll())
		w := postForm(newTestServer(t, api), "/polls/p1/vote", url.Values{})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.Contains(t, w.Body.String(), "Please select an option.")
		require.Contains(t, w.Body.String(), `type="radio"`)
		require.Zero(t, api.votes)
	})

	t.Run("service rejects option", func(t *testing.T) {
		api := newFakeAPI(lunchPoll())
		w := postForm(newTestServer(t, api), "/polls/p1/vote", url.Values{"optionId": {"zzz"}})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "Invalid option for this poll")
		// Poll stays on screen with the form
		require.Contains(t, body, "Favorite lunch?")
		require.Contains(t, body, `type="radio"`)
		require.Empty(t, w.Result().Cookies())
	})

	t.Run("transport failure", func(t *testing.T) {
		api := newFakeAPI(lunchPoll())
		api.voteErr = errors.New("broken pipe")
		w := postForm(newTestServer(t, api), "/polls/p1/vote", url.Values{"optionId": {"a"}})
		require.Equal(t, http.StatusBadGateway, w.Code)
		require.Contains(t, w.Body.String(), "Failed to vote")
	})

	t.Run("poll gone", func(t *testing.T) {
		api := newFakeAPI()
		api.voteErr = &client.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid option for this poll"}
		w := postForm(newTestServer(t, api), "/polls/p1/vote", url.Values{"optionId": {"a"}})
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), "Poll not found")
	})
}

func TestSession_TamperedCookieIgnored(t *testing.T) {
	h := newTestServer(t, newFakeAPI(lunchPoll()))

	forged := &http.Cookie{Name: votedCookie, Value: auth.Sign("p1", "wrong-secret")}
	w := get(h, "/polls/p1", forged)
	require.Contains(t, w.Body.String(), `type="radio"`)

	garbage := &http.Cookie{Name: votedCookie, Value: "not-a-token"}
	w = get(h, "/polls/p1", garbage)
	require.Contains(t, w.Body.String(), `type="radio"`)
}

func TestSession_KeepsMostRecent(t *testing.T) {
	s, err := New(newFakeAPI(), testSecret)
	require.NoError(t, err)

	var cookie *http.Cookie
	for i := 0; i <= votedLimit; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		s.rememberVote(w, req, "poll-"+string(rune('A'+i%26))+string(rune('a'+i/26)))
		cookie = votedCookieFrom(t, w)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	ids := s.votedPolls(req)
	require.Len(t, ids, votedLimit)
	require.False(t, s.hasVoted(req, "poll-Aa"), "oldest id should be dropped")
	require.True(t, s.hasVoted(req, "poll-"+string(rune('A'+votedLimit%26))+string(rune('a'+votedLimit/26))))
}

// ---------------------------------------------------------------------------
// End to end through the real client and service
// ---------------------------------------------------------------------------

func TestEndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	apiSrv := httptest.NewServer(router.NewRouter(store.New(db), testutil.GetTestConfig()))
	defer apiSrv.Close()

	h := newTestServer(t, client.New(apiSrv.URL, client.WithHTTPClient(apiSrv.Client())))

	w := postForm(h, "/create", url.Values{
		"question": {"Ship it?"},
		"option":   {"Yes", "No"},
		"action":   {"create"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/polls/"))
	pollID := strings.TrimPrefix(location, "/polls/")

	var yesID string
	require.NoError(t, db.QueryRow(`SELECT id FROM option WHERE poll_id = $1 AND text = $2`, pollID, "Yes").Scan(&yesID))

	w = postForm(h, location+"/vote", url.Values{"optionId": {yesID}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "1 votes (100%)")
	require.Equal(t, 1, testutil.VoteCount(t, db, yesID))

	w = get(h, "/polls")
	require.Contains(t, w.Body.String(), "Ship it?")
	require.Contains(t, w.Body.String(), "1 vote ")

	w = get(h, "/polls/does-not-exist")
	require.Equal(t, http.StatusNotFound, w.Code)
}
