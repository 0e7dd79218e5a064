// Package github is a minimal GitHub REST client covering the repo
// summary surfaces agentrix serves: open issues, open pull requests
// and their details.
//
// Outbound calls are rate limited and wrapped in a circuit breaker so
// a misbehaving or rate-limiting API does not stall every request the
// server is handling.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.github.com"

// HTTP transport tuning shared by all clients.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	DialContext: (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	TLSHandshakeTimeout: 10 * time.Second,
}

// Options configures a Client.
type Options struct {
	// Token is an optional bearer token for authenticated requests.
	Token string
	// UserAgent is sent on every request.
	UserAgent string
	// BaseURL overrides the GitHub API base URL, mainly for tests.
	BaseURL string
	// Timeout bounds each HTTP request. Defaults to 15 seconds.
	Timeout time.Duration
}

// Client calls the GitHub REST API.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
}

// NewClient creates a GitHub API client.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "agentrix"
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "github",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})

	return &Client{
		baseURL:   baseURL,
		token:     opts.Token,
		userAgent: userAgent,
		// Unauthenticated GitHub allows 60 requests/hour; stay well
		// under the authenticated 5000/hour budget with a small burst.
		limiter: rate.NewLimiter(rate.Limit(1), 5),
		breaker: breaker,
		http: &http.Client{
			Timeout:   timeout,
			Transport: sharedTransport,
		},
	}
}

// RepoSummary fetches open issues and pull requests for owner/repo.
func (c *Client) RepoSummary(ctx context.Context, owner, repo string) (*RepoSummary, error) {
	issues, err := c.ListOpenIssues(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	pulls, err := c.ListOpenPulls(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	return &RepoSummary{
		OpenIssuesCount: len(issues),
		OpenPRsCount:    len(pulls),
		Issues:          issues,
		PullRequests:    pulls,
	}, nil
}

// ListOpenIssues returns the repo's open issues, newest activity
// first. Pull requests, which the issues endpoint also reports, are
// filtered out.
func (c *Client) ListOpenIssues(ctx context.Context, owner, repo string) ([]IssueSummary, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues?state=open&per_page=100&sort=updated&direction=desc", c.baseURL, owner, repo)

	var items []apiIssue
	if err := c.getJSON(ctx, url, &items); err != nil {
		return nil, fmt.Errorf("failed to fetch issues: %w", err)
	}

	issues := make([]IssueSummary, 0, len(items))
	for _, item := range items {
		if item.PullRequest != nil {
			continue
		}
		issues = append(issues, IssueSummary{
			Number:   item.Number,
			Title:    item.Title,
			HTMLURL:  item.HTMLURL,
			Labels:   labelNames(item.Labels),
			Assignee: assignee(item.Assignee),
		})
	}
	return issues, nil
}

// ListOpenPulls returns the repo's open pull requests, newest activity
// first.
func (c *Client) ListOpenPulls(ctx context.Context, owner, repo string) ([]PullSummary, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls?state=open&per_page=100&sort=updated&direction=desc", c.baseURL, owner, repo)

	var items []apiPull
	if err := c.getJSON(ctx, url, &items); err != nil {
		return nil, fmt.Errorf("failed to fetch pulls: %w", err)
	}

	pulls := make([]PullSummary, 0, len(items))
	for _, item := range items {
		pulls = append(pulls, PullSummary{
			Number:  item.Number,
			Title:   item.Title,
			HTMLURL: item.HTMLURL,
			Labels:  labelNames(item.Labels),
			User:    Assignee{Login: item.User.Login, AvatarURL: item.User.AvatarURL},
		})
	}
	return pulls, nil
}

// IssueDetail fetches a single issue.
func (c *Client) IssueDetail(ctx context.Context, owner, repo string, number int) (*IssueDetail, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d", c.baseURL, owner, repo, number)

	var item apiIssue
	if err := c.getJSON(ctx, url, &item); err != nil {
		return nil, fmt.Errorf("failed to fetch issue %d: %w", number, err)
	}

	return &IssueDetail{
		Number:   item.Number,
		Title:    item.Title,
		Body:     item.Body,
		HTMLURL:  item.HTMLURL,
		Labels:   labelNames(item.Labels),
		Assignee: assignee(item.Assignee),
		User:     Assignee{Login: item.User.Login, AvatarURL: item.User.AvatarURL},
		State:    item.State,
	}, nil
}

// PullDetail fetches a single pull request.
func (c *Client) PullDetail(ctx context.Context, owner, repo string, number int) (*PullDetail, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.baseURL, owner, repo, number)

	var item apiPull
	if err := c.getJSON(ctx, url, &item); err != nil {
		return nil, fmt.Errorf("failed to fetch pull %d: %w", number, err)
	}

	return &PullDetail{
		Number:  item.Number,
		Title:   item.Title,
		Body:    item.Body,
		HTMLURL: item.HTMLURL,
		Labels:  labelNames(item.Labels),
		User:    Assignee{Login: item.User.Login, AvatarURL: item.User.AvatarURL},
		State:   item.State,
	}, nil
}

// getJSON performs a rate-limited, breaker-guarded GET and decodes the
// JSON response into target.
func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait canceled: %w", err)
	}

	body, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("User-Agent", c.userAgent)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
