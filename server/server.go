// Package server implements the agentrix workspace HTTP API: a
// greeting root, session listing, GitHub repo summaries, worktree
// creation, health and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vultuk/agentrix/config"
	"github.com/vultuk/agentrix/github"
	"github.com/vultuk/agentrix/logutil"
	"github.com/vultuk/agentrix/worktree"
)

// Server serves the workspace API over a working directory of
// <workspace>/<repository> checkouts.
type Server struct {
	cfg           config.ServerConfig
	gh            *github.Client
	worktreesRoot string
	httpServer    *http.Server
}

// Options configures a Server.
type Options struct {
	Config config.ServerConfig
	// GitHub is the API client used by the repo endpoints. Required.
	GitHub *github.Client
	// WorktreesRoot is where new worktrees are created. Empty uses
	// worktree.DefaultRoot().
	WorktreesRoot string
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	root := opts.WorktreesRoot
	if root == "" {
		var err error
		root, err = worktree.DefaultRoot()
		if err != nil {
			return nil, err
		}
	}

	return &Server{
		cfg:           opts.Config,
		gh:            opts.GitHub,
		worktreesRoot: root,
	}, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", instrument("root", s.handleRoot))
	mux.HandleFunc("GET /sessions", instrument("sessions", s.handleSessions))
	mux.HandleFunc("GET /repos/{owner}/{repo}", instrument("repo_summary", s.handleRepoSummary))
	mux.HandleFunc("GET /repos/{owner}/{repo}/issues/{number}", instrument("issue_detail", s.handleIssueDetail))
	mux.HandleFunc("GET /repos/{owner}/{repo}/pulls/{number}", instrument("pull_detail", s.handlePullDetail))
	mux.HandleFunc("POST /worktrees", instrument("worktree_create", s.handleWorktreeCreate))
	mux.HandleFunc("GET /healthz", instrument("healthz", s.handleHealthz))
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Run listens on the configured address and serves until ctx is
// canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.Addr(), err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logutil.Info("server starting", "addr", listener.Addr().String(), "workdir", s.cfg.Workdir)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		logutil.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server task failed: %w", err)
	}
}
