package project

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderRegistry_Order(t *testing.T) {
	lines := RenderRegistry("proj", []string{"p1", "p2"})
	assert.Equal(t, []string{
		"from kedro.pipeline import Pipeline",
		"from proj.pipelines import p1, p2",
		"",
		"def register_pipelines():",
		`    return {"p1": p1.create_pipeline(), "p2": p2.create_pipeline()}`,
		"",
	}, lines)
}

func TestParseRegistry_RoundTrip(t *testing.T) {
	names := []string{"zeta", "alpha", "__default__"}
	entries := ParseRegistry(strings.Join(RenderRegistry("proj", names), "\n"))

	got := make([]string, 0, len(entries))
	for _, e := range entries {
		assert.Equal(t, e.Name, e.Module)
		got = append(got, e.Name)
	}
	assert.Equal(t, names, got)
}

func TestParseRegistry_Empty(t *testing.T) {
	assert.Empty(t, ParseRegistry(""))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.FromSlash("src/proj/pipeline_registry.py"), RegistryPath("proj"))
	assert.Equal(t, filepath.FromSlash("src/proj/pipelines/p.py"), PipelinePath("proj", "p"))
	assert.Equal(t, filepath.FromSlash("conf/base/catalog/p.yml"), CatalogPath("p"))
	assert.Equal(t, filepath.FromSlash("conf/base/parameters/p.yml"), ParametersPath("p"))
	assert.Equal(t, filepath.FromSlash("src/proj/__main__.py"), PackageFile("proj", MainFile))
}

func TestPipelineTemplate(t *testing.T) {
	lines := PipelineTemplate("my_pipeline")
	assert.Equal(t, `        inputs=["my_pipeline-input",`, lines[7])
	assert.Equal(t, `                "params:my_pipeline-param"],`, lines[8])
	assert.Equal(t, `        outputs="my_pipeline-output")])`, lines[9])
}

func TestExampleCatalog(t *testing.T) {
	cat := ExampleCatalog("p")
	assert.Equal(t, map[string]any{"type": "pandas.CSVDataSet", "filepath": "data/input.csv"}, cat["p-input"])
	assert.Equal(t, map[string]any{"type": "pandas.CSVDataSet", "filepath": "data/output.csv"}, cat["p-output"])
	assert.Equal(t, map[string]any{"p-param": 1}, ExampleParameters("p"))
}
