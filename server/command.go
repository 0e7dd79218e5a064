package server

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vultuk/agentrix/browser"
	"github.com/vultuk/agentrix/cliout"
	"github.com/vultuk/agentrix/config"
	"github.com/vultuk/agentrix/github"
)

// NewCommand creates the `serve` command, which runs the workspace API
// server until interrupted. Flags take precedence over the config
// file, which takes precedence over the built-in defaults.
func NewCommand(cfg *config.Config, userAgent string) *cobra.Command {
	var (
		host    string
		port    int
		workdir string
		open    bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the agentrix workspace server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("workdir") {
				cfg.Server.Workdir = workdir
			}

			gh := github.NewClient(github.Options{
				Token:     cfg.GitHub.Token,
				UserAgent: userAgent,
			})

			srv, err := New(Options{Config: cfg.Server, GitHub: gh})
			if err != nil {
				return err
			}

			if open {
				browseHost := cfg.Server.Host
				if browseHost == "0.0.0.0" || browseHost == "::" {
					browseHost = "127.0.0.1"
				}
				url := fmt.Sprintf("http://%s:%d/", browseHost, cfg.Server.Port)
				if err := browser.Open(url); err != nil {
					cliout.Warning("could not open browser: %v", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "Address to bind to")
	cmd.Flags().IntVar(&port, "port", 4567, "Port to listen on")
	cmd.Flags().StringVar(&workdir, "workdir", ".", "Directory of workspace checkouts")
	cmd.Flags().BoolVar(&open, "open", false, "Open the server root in the default browser")
	return cmd
}
