// pkg/cli/catalog.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/cli/internal/format"
	"github.com/vulntor/pipetest/pkg/flow"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		GroupID: "project",
		Short:   "Inspect the data catalog",
	}
	cmd.AddCommand(newCatalogListCommand())
	return cmd
}

type datasetInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Filepath string `json:"filepath,omitempty"`
	Declared bool   `json:"declared"`
}

func newCatalogListCommand() *cobra.Command {
	var pipeline string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List datasets declared in the catalog or used by a pipeline",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := requireProject(cmd)
			if err != nil {
				return err
			}
			cfg, err := flow.LoadProjectConfig(meta.ProjectPath, nil)
			if err != nil {
				return err
			}

			var names []string
			if pipeline == "" {
				catalog, err := flow.NewCatalog(meta.ProjectPath, cfg)
				if err != nil {
					return err
				}
				names = catalog.List()
			} else {
				reg, err := flow.LoadRegistry(meta)
				if err != nil {
					return err
				}
				p, err := reg.Get(pipeline)
				if err != nil {
					return err
				}
				names = p.Datasets()
			}

			infos := make([]datasetInfo, 0, len(names))
			for _, name := range names {
				infos = append(infos, describeDataset(cfg, name))
			}
			return printCatalog(format.FromCommand(cmd), infos)
		},
	}

	cmd.Flags().StringVarP(&pipeline, "pipeline", "p", "", "Only list datasets used by this pipeline")

	return cmd
}

func describeDataset(cfg *flow.ProjectConfig, name string) datasetInfo {
	if spec, ok := cfg.Catalog[name]; ok {
		return datasetInfo{Name: name, Type: spec.Type, Filepath: spec.Filepath, Declared: true}
	}
	if name == flow.ParametersName || strings.HasPrefix(name, flow.ParamsPrefix) {
		return datasetInfo{Name: name, Type: "parameters"}
	}
	return datasetInfo{Name: name, Type: flow.TypeMemory}
}

func printCatalog(f format.Formatter, infos []datasetInfo) error {
	if f.IsJSON() {
		return f.PrintJSON(map[string]any{
			"datasets": infos,
			"count":    len(infos),
		})
	}
	if len(infos) == 0 {
		return f.PrintSummary("No datasets found.")
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Type, info.Filepath})
	}
	if err := f.PrintTable([]string{"Dataset", "Type", "Filepath"}, rows); err != nil {
		return err
	}
	return f.PrintSummary(fmt.Sprintf("Found %d dataset(s)", len(infos)))
}
