package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/vultuk/agentrix/logutil"
	"github.com/vultuk/agentrix/session"
	"github.com/vultuk/agentrix/worktree"
)

// dataEnvelope wraps every successful response.
type dataEnvelope struct {
	Data any `json:"data"`
}

// errorEnvelope wraps every failed response.
type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logutil.Error("failed to encode response", "error", err)
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, dataEnvelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorEnvelope{Error: err.Error()})
}

// greetingResponse is the root payload, kept stable for clients that
// probe it to detect a running server.
type greetingResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeData(w, greetingResponse{Message: "Hello, world!"})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	workspaces, err := session.WorkspacesFromDir(s.cfg.Workdir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeData(w, workspaces)
}

func (s *Server) handleRepoSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.gh.RepoSummary(r.Context(), r.PathValue("owner"), r.PathValue("repo"))
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, summary)
}

func (s *Server) handleIssueDetail(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("issue number must be an integer"))
		return
	}

	detail, err := s.gh.IssueDetail(r.Context(), r.PathValue("owner"), r.PathValue("repo"), number)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, detail)
}

func (s *Server) handlePullDetail(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("pull number must be an integer"))
		return
	}

	detail, err := s.gh.PullDetail(r.Context(), r.PathValue("owner"), r.PathValue("repo"), number)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, detail)
}

// worktreeRequest is the POST /worktrees body.
type worktreeRequest struct {
	Workspace  string `json:"workspace"`
	Repository string `json:"repository"`
	Branch     string `json:"branch"`
}

// worktreeResponse reports the created worktree directory.
type worktreeResponse struct {
	Path string `json:"path"`
}

func (s *Server) handleWorktreeCreate(w http.ResponseWriter, r *http.Request) {
	var req worktreeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	if err := validateName(req.Workspace); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validateName(req.Repository); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Branch) == "" {
		writeError(w, http.StatusBadRequest, errors.New("branch name cannot be empty"))
		return
	}

	repoPath := filepath.Join(s.cfg.Workdir, req.Workspace, req.Repository)
	if info, err := os.Stat(repoPath); err != nil || !info.IsDir() {
		writeError(w, http.StatusNotFound, errors.New("repository checkout not found"))
		return
	}

	path, err := worktree.Create(r.Context(), repoPath, req.Workspace, req.Repository, req.Branch, s.worktreesRoot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, dataEnvelope{Data: worktreeResponse{Path: path}})
}

// validateName rejects workspace/repository names that could escape
// the working directory when joined into a path.
func validateName(name string) error {
	if name == "" {
		return errors.New("workspace and repository are required")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return errors.New("workspace and repository must be plain directory names")
	}
	return nil
}

// healthzResponse reports process liveness and resource usage.
type healthzResponse struct {
	Status     string  `json:"status"`
	PID        int32   `json:"pid"`
	UptimeSecs float64 `json:"uptime_seconds"`
	RSSBytes   uint64  `json:"rss_bytes"`
	Goroutines int     `json:"goroutines"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := healthzResponse{
		Status:     "ok",
		PID:        int32(os.Getpid()),
		Goroutines: runtime.NumGoroutine(),
	}

	// Resource stats are best-effort; liveness doesn't depend on them.
	if proc, err := process.NewProcessWithContext(r.Context(), resp.PID); err == nil {
		if created, err := proc.CreateTimeWithContext(r.Context()); err == nil {
			resp.UptimeSecs = time.Since(time.UnixMilli(created)).Seconds()
		}
		if mem, err := proc.MemoryInfoWithContext(r.Context()); err == nil {
			resp.RSSBytes = mem.RSS
		}
	}

	writeData(w, resp)
}
