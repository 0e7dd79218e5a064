// Command agentrix is a developer-workspace tool: it serves a
// workspace HTTP API, summarizes GitHub repositories, and applies
// build-time patches to vendored dependencies.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vultuk/agentrix/config"
	"github.com/vultuk/agentrix/github"
	"github.com/vultuk/agentrix/logutil"
	"github.com/vultuk/agentrix/server"
	"github.com/vultuk/agentrix/swiftpatch"
	"github.com/vultuk/agentrix/version"
)

// Set via ldflags at build time.
var (
	buildVersion = "0.0.0-dev"
	buildDate    = "unknown"
	gitCommit    = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	info := version.New("agentrix")
	info.Version = buildVersion
	info.BuildDate = buildDate
	info.GitCommit = gitCommit

	cfg := config.Default()

	var (
		configPath   string
		debug        bool
		outputFormat string
	)

	root := &cobra.Command{
		Use:           "agentrix",
		Short:         "Developer workspace server and build tooling",
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logutil.Setup(os.Stderr, debug || logutil.IsDebugEnabled(), false)

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			return cfg.ResolveSecrets(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default agentrix.yaml if present)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format (json)")

	root.AddCommand(server.NewCommand(cfg, info.UserAgent()))
	root.AddCommand(github.NewRepoCommand(cfg, info.UserAgent(), &outputFormat))
	root.AddCommand(swiftpatch.NewCommand())
	root.AddCommand(version.NewCommand(info, &outputFormat))

	return root
}
