// Package worktree creates git worktrees for feature branches under a
// per-user worktrees root.
package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vultuk/agentrix/cmdutil"
	"github.com/vultuk/agentrix/fileutil"
	"github.com/vultuk/agentrix/logutil"
)

// Create runs `git worktree add -b <branch>` in repoPath, placing the
// new worktree under root/<workspace>/<repository>/<sanitized-branch>.
// Returns the created worktree directory.
func Create(ctx context.Context, repoPath, workspace, repository, branch, root string) (string, error) {
	if strings.TrimSpace(branch) == "" {
		return "", fmt.Errorf("branch name cannot be empty")
	}

	targetDir := filepath.Join(root, workspace, repository, SanitizeBranchName(branch))

	if err := fileutil.EnsureDir(filepath.Dir(targetDir)); err != nil {
		return "", fmt.Errorf("failed to create worktree parent for %s: %w", targetDir, err)
	}

	args := []string{"worktree", "add", "-b", branch, targetDir}
	output, err := cmdutil.RunCommandWithOutput(ctx, "git", args, repoPath)
	if err != nil {
		return "", fmt.Errorf("git worktree add failed: %s", strings.TrimSpace(string(output)))
	}

	logutil.Info("created worktree", "branch", branch, "dir", targetDir)
	return targetDir, nil
}

// SanitizeBranchName maps a branch name onto a filesystem-safe
// directory name. ASCII alphanumerics and '-' pass through; everything
// else becomes '_'.
func SanitizeBranchName(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, c := range input {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// DefaultRoot returns the default worktrees directory,
// $HOME/.agentrix/worktrees.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".agentrix", "worktrees"), nil
}
