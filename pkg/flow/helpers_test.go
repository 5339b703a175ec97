package flow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vulntor/pipetest/pkg/config"
	"github.com/vulntor/pipetest/pkg/project"
)

func writeFile(t *testing.T, root, rel string, lines ...string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func writeYAML(t *testing.T, root, rel string, m map[string]any) {
	t.Helper()
	out, err := config.EncodeYAML(m)
	require.NoError(t, err)
	writeFile(t, root, rel, strings.TrimSuffix(out, "\n"))
}

// newProject lays out a project named proj with the scaffolded pipelines and
// returns its metadata.
func newProject(t *testing.T, pipelines ...string) *project.Metadata {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, project.ManifestFile, project.ManifestLines("proj", "0.1.0")...)
	writeFile(t, root, project.ExampleData, project.ExampleDataLines...)
	for _, p := range pipelines {
		writeFile(t, root, filepath.ToSlash(project.PipelinePath("proj", p)), project.PipelineTemplate(p)...)
		writeYAML(t, root, filepath.ToSlash(project.CatalogPath(p)), project.ExampleCatalog(p))
		writeYAML(t, root, filepath.ToSlash(project.ParametersPath(p)), project.ExampleParameters(p))
	}
	if len(pipelines) > 0 {
		writeFile(t, root, filepath.ToSlash(project.RegistryPath("proj")), project.RenderRegistry("proj", pipelines)...)
	}

	meta, err := project.LoadMetadata(root)
	require.NoError(t, err)
	return meta
}
