package swiftpatch

import (
	"github.com/spf13/cobra"

	"github.com/vultuk/agentrix/cliout"
)

// NewCommand creates the `patch` command group with the `swiftterm`
// subcommand used by the iOS build pipeline.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply build-time patches to vendored dependencies",
	}
	cmd.AddCommand(newSwiftTermCommand())
	return cmd
}

func newSwiftTermCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "swiftterm [package-root]",
		Short: "Patch the SwiftTerm checkout so it builds for visionOS",
		Long: "Patch the SwiftTerm checkout so it builds for visionOS.\n\n" +
			"The package root is the SwiftPM directory containing checkouts/.\n" +
			"With no argument, or when the checkout is not present, this is a\n" +
			"no-op so build pipelines can invoke it unconditionally.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) > 0 {
				root = args[0]
			}

			res, err := Apply(root)
			if err != nil {
				return err
			}

			if res.Patched {
				cliout.Success("patched %s", res.Target)
			}
			return nil
		},
	}
}
