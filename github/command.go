package github

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vultuk/agentrix/browser"
	"github.com/vultuk/agentrix/cliout"
	"github.com/vultuk/agentrix/config"
)

// NewRepoCommand creates the `repo` command, which prints a GitHub
// repository's open issue and pull request summary.
func NewRepoCommand(cfg *config.Config, userAgent string, outputFormat *string) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "repo <owner>/<repo>",
		Short: "Show a repository's open issues and pull requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, ok := strings.Cut(args[0], "/")
			if !ok || owner == "" || repo == "" {
				return fmt.Errorf("expected <owner>/<repo>, got %q", args[0])
			}

			if open {
				if err := browser.Open(fmt.Sprintf("https://github.com/%s/%s", owner, repo)); err != nil {
					cliout.Warning("could not open browser: %v", err)
				}
			}

			client := NewClient(Options{
				Token:     cfg.GitHub.Token,
				UserAgent: userAgent,
			})

			summary, err := client.RepoSummary(cmd.Context(), owner, repo)
			if err != nil {
				return err
			}

			if outputFormat != nil && *outputFormat == "json" {
				data, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			printSummary(owner, repo, summary)
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Open the repository in the default browser")
	return cmd
}

func printSummary(owner, repo string, summary *RepoSummary) {
	cliout.Header(fmt.Sprintf("%s/%s", owner, repo))
	cliout.Label("Open issues", fmt.Sprintf("%d", summary.OpenIssuesCount))
	cliout.Label("Open PRs", fmt.Sprintf("%d", summary.OpenPRsCount))

	if len(summary.Issues) > 0 {
		fmt.Println()
		cliout.Info("Issues")
		for _, issue := range summary.Issues {
			cliout.Item("#%d %s", issue.Number, issue.Title)
		}
	}

	if len(summary.PullRequests) > 0 {
		fmt.Println()
		cliout.Info("Pull requests")
		for _, pull := range summary.PullRequests {
			cliout.Item("#%d %s (%s)", pull.Number, pull.Title, pull.User.Login)
		}
	}
}
