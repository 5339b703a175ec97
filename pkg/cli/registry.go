// pkg/cli/registry.go
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/cli/internal/format"
	"github.com/vulntor/pipetest/pkg/flow"
)

func newRegistryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registry",
		Aliases: []string{"pipeline"},
		GroupID: "project",
		Short:   "Inspect registered pipelines",
	}
	cmd.AddCommand(newRegistryListCommand())
	return cmd
}

type pipelineInfo struct {
	Name   string   `json:"name"`
	Module string   `json:"module"`
	Nodes  []string `json:"nodes"`
	Inputs []string `json:"inputs"`
}

func newRegistryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered pipelines",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := requireProject(cmd)
			if err != nil {
				return err
			}
			reg, err := flow.LoadRegistry(meta)
			if err != nil {
				return err
			}

			infos := make([]pipelineInfo, 0, len(reg.Names))
			for _, name := range reg.Names {
				p := reg.Pipelines[name]
				nodes := make([]string, len(p.Nodes))
				for i, n := range p.Nodes {
					nodes[i] = n.Name
				}
				infos = append(infos, pipelineInfo{Name: name, Module: p.Module, Nodes: nodes, Inputs: p.Inputs()})
			}
			return printRegistry(format.FromCommand(cmd), infos)
		},
	}
}

func printRegistry(f format.Formatter, infos []pipelineInfo) error {
	if f.IsJSON() {
		return f.PrintJSON(map[string]any{
			"pipelines": infos,
			"count":     len(infos),
		})
	}
	if len(infos) == 0 {
		return f.PrintSummary("No pipelines registered.")
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Module, strconv.Itoa(len(info.Nodes))})
	}
	if err := f.PrintTable([]string{"Name", "Module", "Nodes"}, rows); err != nil {
		return err
	}
	return f.PrintSummary(fmt.Sprintf("Found %d pipeline(s)", len(infos)))
}
