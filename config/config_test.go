package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 4567 {
		t.Errorf("Port = %d, want 4567", cfg.Server.Port)
	}
	if cfg.Server.Workdir != "." {
		t.Errorf("Workdir = %q, want .", cfg.Server.Workdir)
	}
	if cfg.GitHub.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.GitHub.Token)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentrix.yaml")
	content := "server:\n  host: 127.0.0.1\n  port: 9090\n  workdir: /srv/workspaces\ngithub:\n  token: ghp_example\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Workdir != "/srv/workspaces" {
		t.Errorf("Workdir = %q, want /srv/workspaces", cfg.Server.Workdir)
	}
	if cfg.GitHub.Token != "ghp_example" {
		t.Errorf("Token = %q, want ghp_example", cfg.GitHub.Token)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentrix.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoadExplicitMissingPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with an explicit missing path succeeded")
	}
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentrix.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with invalid YAML succeeded")
	}
}

func TestResolveSecretsUsesEnvFallback(t *testing.T) {
	t.Setenv(EnvGitHubToken, "env-token")

	cfg := Default()
	if err := cfg.ResolveSecrets(context.Background()); err != nil {
		t.Fatalf("ResolveSecrets() error = %v", err)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Errorf("Token = %q, want env-token", cfg.GitHub.Token)
	}
}

func TestResolveSecretsKeepsLiteralToken(t *testing.T) {
	t.Setenv(EnvGitHubToken, "env-token")

	cfg := Default()
	cfg.GitHub.Token = "literal-token"
	if err := cfg.ResolveSecrets(context.Background()); err != nil {
		t.Fatalf("ResolveSecrets() error = %v", err)
	}
	if cfg.GitHub.Token != "literal-token" {
		t.Errorf("Token = %q, want literal-token", cfg.GitHub.Token)
	}
}
