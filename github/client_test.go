package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Options{
		Token:     "test-token",
		UserAgent: "agentrix/test",
		BaseURL:   server.URL,
	})
}

func TestRepoSummaryFiltersPullRequestsFromIssues(t *testing.T) {
	var gotAuth, gotUA string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/repos/acme/platform/issues":
			w.Write([]byte(`[
				{"number": 7, "title": "Real issue", "html_url": "https://github.com/acme/platform/issues/7",
				 "labels": [{"name": "bug"}], "assignee": {"login": "sam", "avatar_url": "https://a/sam"}},
				{"number": 8, "title": "Actually a PR", "html_url": "https://github.com/acme/platform/pull/8",
				 "labels": [], "pull_request": {}}
			]`))
		case "/repos/acme/platform/pulls":
			w.Write([]byte(`[
				{"number": 8, "title": "Actually a PR", "html_url": "https://github.com/acme/platform/pull/8",
				 "labels": [{"name": "enhancement"}], "user": {"login": "alex", "avatar_url": "https://a/alex"}}
			]`))
		default:
			http.NotFound(w, r)
		}
	})

	client := newTestClient(t, handler)
	summary, err := client.RepoSummary(context.Background(), "acme", "platform")

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "agentrix/test", gotUA)

	assert.Equal(t, 1, summary.OpenIssuesCount, "pull requests should be filtered from the issues list")
	assert.Equal(t, 1, summary.OpenPRsCount)

	require.Len(t, summary.Issues, 1)
	assert.Equal(t, 7, summary.Issues[0].Number)
	assert.Equal(t, []string{"bug"}, summary.Issues[0].Labels)
	require.NotNil(t, summary.Issues[0].Assignee)
	assert.Equal(t, "sam", summary.Issues[0].Assignee.Login)

	require.Len(t, summary.PullRequests, 1)
	assert.Equal(t, "alex", summary.PullRequests[0].User.Login)
}

func TestIssueDetail(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/platform/issues/42", r.URL.Path)
		w.Write([]byte(`{"number": 42, "title": "Crash on start", "body": "stack trace...",
			"html_url": "https://github.com/acme/platform/issues/42",
			"labels": [{"name": "bug"}], "user": {"login": "sam"}, "state": "open"}`))
	})

	client := newTestClient(t, handler)
	detail, err := client.IssueDetail(context.Background(), "acme", "platform", 42)

	require.NoError(t, err)
	assert.Equal(t, 42, detail.Number)
	assert.Equal(t, "Crash on start", detail.Title)
	assert.Equal(t, "stack trace...", detail.Body)
	assert.Equal(t, "open", detail.State)
	assert.Nil(t, detail.Assignee)
}

func TestPullDetail(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/platform/pulls/9", r.URL.Path)
		w.Write([]byte(`{"number": 9, "title": "Add metrics", "body": "",
			"html_url": "https://github.com/acme/platform/pull/9",
			"labels": [], "user": {"login": "alex"}, "state": "open"}`))
	})

	client := newTestClient(t, handler)
	detail, err := client.PullDetail(context.Background(), "acme", "platform", 9)

	require.NoError(t, err)
	assert.Equal(t, 9, detail.Number)
	assert.Equal(t, "alex", detail.User.Login)
}

func TestErrorStatusSurfaces(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	client := newTestClient(t, handler)
	_, err := client.ListOpenIssues(context.Background(), "acme", "platform")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Options{BaseURL: server.URL})
	_, err := client.ListOpenPulls(context.Background(), "acme", "platform")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}
