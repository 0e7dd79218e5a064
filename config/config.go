// Package config loads the agentrix.yaml configuration file and
// resolves secret references in it.
package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vultuk/agentrix/keyvault"
	"github.com/vultuk/agentrix/logutil"
)

// DefaultFile is the config file name looked up in the working
// directory when no --config flag is given.
const DefaultFile = "agentrix.yaml"

// EnvGitHubToken supplies the GitHub token when the config file
// doesn't.
const EnvGitHubToken = "GITHUB_TOKEN"

// ServerConfig configures the workspace server.
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Workdir string `yaml:"workdir"`
}

// GitHubConfig configures GitHub API access. Token may be a literal
// token or an Azure Key Vault reference.
type GitHubConfig struct {
	Token string `yaml:"token"`
}

// Config is the root configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	GitHub GitHubConfig `yaml:"github"`
}

// Default returns the built-in configuration: listen on 0.0.0.0:4567
// and serve the current directory.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    4567,
			Workdir: ".",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path means
// "use agentrix.yaml if present"; a missing file is then not an error.
// An explicit path that doesn't exist is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	logutil.Debug("loaded config", "path", path)
	return cfg, nil
}

// ResolveSecrets fills in the GitHub token from the environment when
// unset, and resolves Key Vault references to secret values.
func (c *Config) ResolveSecrets(ctx context.Context) error {
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv(EnvGitHubToken)
	}

	if !keyvault.IsReference(c.GitHub.Token) {
		return nil
	}

	resolver, err := keyvault.NewResolver()
	if err != nil {
		return fmt.Errorf("failed to create Key Vault resolver: %w", err)
	}

	token, err := resolver.Resolve(ctx, c.GitHub.Token)
	if err != nil {
		return fmt.Errorf("failed to resolve GitHub token reference: %w", err)
	}

	c.GitHub.Token = token
	return nil
}
