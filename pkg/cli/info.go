// pkg/cli/info.go
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/project"
	"github.com/vulntor/pipetest/pkg/version"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		GroupID: "core",
		Short:   "Show framework and project information",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := []string{
				titleStyle.Render(cliExecutable),
				fmt.Sprintf("version: %s", version.Version),
			}
			if meta, ok := project.MetadataFromContext(cmd.Context()); ok {
				lines = append(lines,
					fmt.Sprintf("project: %s", meta.ProjectName),
					fmt.Sprintf("package: %s", meta.PackageName),
					fmt.Sprintf("path:    %s", meta.ProjectPath),
				)
			} else {
				lines = append(lines, "project: none")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), bannerStyle.Render(strings.Join(lines, "\n")))
			return err
		},
	}
}
