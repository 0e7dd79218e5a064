// Package session builds the workspace/repository tree served by the
// sessions endpoint. The working directory is laid out as
// <workspace>/<repository> checkouts; anything that is not a directory
// is ignored.
package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is a top-level directory holding repository checkouts.
type Workspace struct {
	Name         string       `json:"name"`
	Repositories []Repository `json:"repositories"`
}

// Repository is a single checkout within a workspace.
type Repository struct {
	Name      string     `json:"name"`
	Plans     []Plan     `json:"plans"`
	Worktrees []Worktree `json:"worktrees"`
}

// Plan is a named work plan attached to a repository.
type Plan struct {
	Name         string `json:"name"`
	SessionID    string `json:"session_id"`
	RelatedIssue *int   `json:"related_issue,omitempty"`
}

// Worktree is an active worktree with its attached terminals.
type Worktree struct {
	Name      string     `json:"name"`
	Terminals []Terminal `json:"terminals"`
}

// Terminal is a terminal session running inside a worktree.
type Terminal struct {
	Name      string `json:"name"`
	Kind      string `json:"type"`
	Dangerous *bool  `json:"dangerous,omitempty"`
	SessionID string `json:"session_id"`
}

// WorkspacesFromDir scans workdir and returns one Workspace per
// directory entry, each populated with its repository directories.
// A missing workdir yields an empty list.
func WorkspacesFromDir(workdir string) ([]Workspace, error) {
	entries, err := os.ReadDir(workdir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Workspace{}, nil
		}
		return nil, fmt.Errorf("failed to read workdir %s: %w", workdir, err)
	}

	workspaces := []Workspace{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		repos, err := repositoriesFromDir(filepath.Join(workdir, entry.Name()))
		if err != nil {
			return nil, err
		}

		workspaces = append(workspaces, Workspace{
			Name:         entry.Name(),
			Repositories: repos,
		})
	}

	return workspaces, nil
}

func repositoriesFromDir(workspacePath string) ([]Repository, error) {
	entries, err := os.ReadDir(workspacePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace directory %s: %w", workspacePath, err)
	}

	repositories := []Repository{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		repositories = append(repositories, Repository{
			Name:      entry.Name(),
			Plans:     []Plan{},
			Worktrees: []Worktree{},
		})
	}

	return repositories, nil
}
