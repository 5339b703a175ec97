// pkg/fixture/pipeline.go
package fixture

import (
	"fmt"
	"slices"

	"github.com/vulntor/pipetest/pkg/config"
	"github.com/vulntor/pipetest/pkg/project"
)

// CreatePipeline registers an example pipeline. An empty name means the
// default pipeline. Other names become module names and must be identifiers,
// otherwise ErrInvalidName is returned. Without lines the pipeline module is the add_column
// template; otherwise lines are written verbatim and must define
// create_pipeline. Registering a name twice does nothing.
//
// Each registration writes data/input.csv if it is missing, the pipeline
// module, its catalog and parameters files, and regenerates the registry
// from every registered name.
func (f *Fixture) CreatePipeline(name string, lines ...string) error {
	if f.project == "" {
		return ErrNoProject
	}
	if name == "" {
		name = config.DefaultPipeline
	}
	if !project.IsIdentifier(name) {
		return fmt.Errorf("%w: pipeline %q", ErrInvalidName, name)
	}
	if slices.Contains(f.pipelines, name) {
		return nil
	}

	if !f.fs.Exists(project.ExampleData) {
		if _, err := f.fs.Write(project.ExampleData, project.ExampleDataLines...); err != nil {
			return err
		}
	}

	if len(lines) == 0 {
		lines = project.PipelineTemplate(name)
	}
	if _, err := f.fs.Write(project.PipelinePath(f.project, name), lines...); err != nil {
		return err
	}
	if _, err := f.WriteYAML(project.CatalogPath(name), project.ExampleCatalog(name)); err != nil {
		return err
	}
	if _, err := f.WriteYAML(project.ParametersPath(name), project.ExampleParameters(name)); err != nil {
		return err
	}

	f.pipelines = append(f.pipelines, name)
	if _, err := f.fs.Write(project.RegistryPath(f.project), project.RenderRegistry(f.project, f.pipelines)...); err != nil {
		return err
	}

	f.opts.logger.Debug().Str("pipeline", name).Int("registered", len(f.pipelines)).Msg("pipeline created")
	return nil
}
