package github

// Assignee identifies a GitHub user on an issue or pull request.
type Assignee struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// IssueSummary is one open issue in a repo summary.
type IssueSummary struct {
	Number   int       `json:"number"`
	Title    string    `json:"title"`
	HTMLURL  string    `json:"html_url"`
	Labels   []string  `json:"labels"`
	Assignee *Assignee `json:"assignee,omitempty"`
}

// PullSummary is one open pull request in a repo summary.
type PullSummary struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	HTMLURL string   `json:"html_url"`
	Labels  []string `json:"labels"`
	User    Assignee `json:"user"`
}

// RepoSummary aggregates a repository's open issues and pull requests.
type RepoSummary struct {
	OpenIssuesCount int            `json:"open_issues_count"`
	OpenPRsCount    int            `json:"open_prs_count"`
	Issues          []IssueSummary `json:"issues"`
	PullRequests    []PullSummary  `json:"pull_requests"`
}

// IssueDetail is a single issue with its body.
type IssueDetail struct {
	Number   int       `json:"number"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	HTMLURL  string    `json:"html_url"`
	Labels   []string  `json:"labels"`
	Assignee *Assignee `json:"assignee,omitempty"`
	User     Assignee  `json:"user"`
	State    string    `json:"state"`
}

// PullDetail is a single pull request with its body.
type PullDetail struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	HTMLURL string   `json:"html_url"`
	Labels  []string `json:"labels"`
	User    Assignee `json:"user"`
	State   string   `json:"state"`
}

// Wire types returned by the GitHub REST API.

type apiLabel struct {
	Name string `json:"name"`
}

type apiUser struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

type apiIssue struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	HTMLURL     string     `json:"html_url"`
	Labels      []apiLabel `json:"labels"`
	Assignee    *apiUser   `json:"assignee"`
	User        apiUser    `json:"user"`
	State       string     `json:"state"`
	PullRequest *struct{}  `json:"pull_request,omitempty"`
}

type apiPull struct {
	Number  int        `json:"number"`
	Title   string     `json:"title"`
	Body    string     `json:"body"`
	HTMLURL string     `json:"html_url"`
	Labels  []apiLabel `json:"labels"`
	User    apiUser    `json:"user"`
	State   string     `json:"state"`
}

func labelNames(labels []apiLabel) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}

func assignee(u *apiUser) *Assignee {
	if u == nil {
		return nil
	}
	return &Assignee{Login: u.Login, AvatarURL: u.AvatarURL}
}
