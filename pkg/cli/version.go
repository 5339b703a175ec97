// pkg/cli/version.go
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/cli/internal/format"
	v "github.com/vulntor/pipetest/pkg/version"
)

// NewVersionCommand prints build information for cliExecutable.
func NewVersionCommand(cliExecutable string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:     "version",
		GroupID: "core",
		Short:   "Print version information",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := v.Get()
			f := format.FromCommand(cmd)
			if f.IsJSON() {
				return f.PrintJSON(info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version: %s\n", cliExecutable, info.Version)
			if short {
				return nil
			}
			fmt.Fprintf(out, "Commit: %s\n", info.Commit)
			fmt.Fprintf(out, "Build Date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")

	return cmd
}
