package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulntor/pipetest/pkg/cli"
	"github.com/vulntor/pipetest/pkg/clirunner"
	"github.com/vulntor/pipetest/pkg/fixture"
	"github.com/vulntor/pipetest/pkg/flow"
	"github.com/vulntor/pipetest/pkg/paths"
	"github.com/vulntor/pipetest/pkg/project"
	"github.com/vulntor/pipetest/pkg/version"
)

func newProject(t *testing.T, pipelines ...string) *fixture.Fixture {
	t.Helper()
	f := fixture.NewTest(t, fixture.WithoutChdir())
	_, err := f.Create("proj")
	require.NoError(t, err)
	for _, p := range pipelines {
		require.NoError(t, f.CreatePipeline(p))
	}
	return f
}

func TestVersionCommand(t *testing.T) {
	cmd, err := clirunner.Find(cli.NewCommand(), []string{"version"})
	require.NoError(t, err)

	res := (&clirunner.Runner{}).Invoke(context.Background(), cmd, []string{"--short"})
	require.True(t, res.Success(), res.Output)
	assert.Equal(t, "flow version: "+version.Version+"\n", res.Stdout)

	res = (&clirunner.Runner{}).Invoke(context.Background(), cmd, []string{"-o", "json"})
	require.True(t, res.Success(), res.Output)
	var info version.Struct
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &info))
	assert.Equal(t, version.Get(), info)
}

func TestRun_OutsideProject(t *testing.T) {
	chdir(t, t.TempDir())

	cmd, err := clirunner.Find(cli.NewCommand(), []string{"run"})
	require.NoError(t, err)

	res := (&clirunner.Runner{}).Invoke(context.Background(), cmd, nil)
	assert.Equal(t, cli.ExitNotFound, res.ExitCode)
	require.ErrorIs(t, res.Err, project.ErrNoManifest)
}

func TestRun_FromWorkingDirectory(t *testing.T) {
	f := newProject(t, "p")
	chdir(t, f.Path())

	cmd, err := clirunner.Find(cli.NewCommand(), []string{"run"})
	require.NoError(t, err)

	res := (&clirunner.Runner{}).Invoke(context.Background(), cmd, []string{"--pipeline", "p"})
	require.True(t, res.Success(), res.Output)
	assert.Contains(t, res.Output, "INFO     "+flow.CompletedMessage)
}

func TestRun_LogLevelFlag(t *testing.T) {
	f := newProject(t, "p")

	res, err := f.RunPipeline("p", nil, "--log-level", "warn")
	require.NoError(t, err)
	require.True(t, res.Success(), res.Output)
	assert.NotContains(t, res.Output, flow.CompletedMessage)
}

func TestRun_JSONLogs(t *testing.T) {
	f := newProject(t, "p")

	res, err := f.RunPipeline("p", nil, "--log-format", "json")
	require.NoError(t, err)
	require.True(t, res.Success(), res.Output)
	assert.Contains(t, res.Stderr, `"message":"Pipeline execution completed."`)
	assert.Contains(t, res.Stderr, `"component":"flow"`)
}

func TestRun_PipelineFromEnvironment(t *testing.T) {
	f := newProject(t, "p")
	t.Setenv("FLOW_RUN_PIPELINE", "p")

	res, err := f.CLI([]string{"run"}, nil)
	require.NoError(t, err)
	require.True(t, res.Success(), res.Output)
	assert.True(t, f.FS().Exists(project.ExampleOutput))
}

func TestRun_PipelineFromUserConfig(t *testing.T) {
	f := newProject(t, "p")
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "flow"), 0o755))
	require.NoError(t, os.WriteFile(paths.ConfigFile(), []byte("run:\n  pipeline: p\n"), 0o644))

	res, err := f.CLI([]string{"run"}, nil)
	require.NoError(t, err)
	require.True(t, res.Success(), res.Output)
	assert.True(t, f.FS().Exists(project.ExampleOutput))
}

func TestRun_DefaultPipelineNotRegistered(t *testing.T) {
	f := newProject(t, "p")

	res, err := f.CLI([]string{"run"}, nil)
	require.NoError(t, err)
	require.ErrorIs(t, res.Err, flow.ErrPipelineNotFound)
	assert.Equal(t, cli.ExitNotFound, res.ExitCode)
	assert.Contains(t, res.Err.Error(), "__default__")
}

func TestRun_IncompatibleProject(t *testing.T) {
	f := newProject(t, "p")
	_, err := f.FS().Write(project.ManifestFile, project.ManifestLines("proj", "99.0.0")...)
	require.NoError(t, err)

	res, err := f.RunPipeline("p", nil)
	require.NoError(t, err)
	require.ErrorIs(t, res.Err, project.ErrIncompatibleVersion)
	assert.Equal(t, cli.ExitIncompatible, res.ExitCode)
}

func TestRun_MissingInputData(t *testing.T) {
	f := newProject(t, "p")
	require.NoError(t, os.Remove(f.FS().Abs(project.ExampleData)))

	res, err := f.RunPipeline("p", nil)
	require.NoError(t, err)
	require.ErrorIs(t, res.Err, flow.ErrDataSetNotFound)
	assert.Equal(t, cli.ExitNotFound, res.ExitCode)
}

func TestExecute(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	t.Run("success", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := cli.Execute(context.Background(), []string{"version", "--short"}, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Equal(t, "flow version: "+version.Version+"\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("error printed once with exit code", func(t *testing.T) {
		chdir(t, t.TempDir())
		var stdout, stderr bytes.Buffer
		code := cli.Execute(context.Background(), []string{"run"}, &stdout, &stderr)
		assert.Equal(t, cli.ExitNotFound, code)
		assert.Equal(t, 1, strings.Count(stderr.String(), "Error:"))
		assert.Contains(t, stderr.String(), "must be run inside a project directory")
		assert.Empty(t, stdout.String())
	})

	t.Run("json error on stdout", func(t *testing.T) {
		chdir(t, t.TempDir())
		var stdout, stderr bytes.Buffer
		code := cli.Execute(context.Background(), []string{"run", "-o", "json"}, &stdout, &stderr)
		assert.Equal(t, cli.ExitNotFound, code)

		var out struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.False(t, out.Success)
		assert.Contains(t, out.Error, "no project manifest")
	})

	t.Run("unknown command", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := cli.Execute(context.Background(), []string{"nope"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "unknown command")
	})
}

func TestRun_BadParams(t *testing.T) {
	f := newProject(t, "p")

	res, err := f.RunPipeline("p", nil, "--params", "nonsense")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "expected key=value")
}

func TestInvalidOutputMode(t *testing.T) {
	f := newProject(t)

	res, err := f.CLI([]string{"registry", "list"}, []string{"-o", "yaml"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "invalid output mode")
}

func TestRegistryList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := newProject(t)
		res, err := f.CLI([]string{"registry", "ls"}, nil)
		require.NoError(t, err)
		require.True(t, res.Success(), res.Output)
		assert.Contains(t, res.Stdout, "No pipelines registered.")
	})

	t.Run("json", func(t *testing.T) {
		f := newProject(t, "b", "a")
		res, err := f.CLI([]string{"pipeline", "list"}, []string{"--output", "json"})
		require.NoError(t, err)
		require.True(t, res.Success(), res.Output)

		var out struct {
			Pipelines []struct {
				Name   string   `json:"name"`
				Nodes  []string `json:"nodes"`
				Inputs []string `json:"inputs"`
			} `json:"pipelines"`
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &out))
		require.Equal(t, 2, out.Count)
		assert.Equal(t, "b", out.Pipelines[0].Name)
		assert.Equal(t, "a", out.Pipelines[1].Name)
		assert.Equal(t, []string{"add_column"}, out.Pipelines[0].Nodes)
		assert.Equal(t, []string{"b-input", "params:b-param"}, out.Pipelines[0].Inputs)
	})
}

func TestCatalogList(t *testing.T) {
	f := newProject(t, "p1", "p2")

	res, err := f.CLI([]string{"catalog", "list"}, []string{"--no-color", "-q"})
	require.NoError(t, err)
	require.True(t, res.Success(), res.Output)

	assert.Contains(t, res.Stdout, "DATASET")
	for _, name := range []string{"p1-input", "p1-output", "p2-input", "p2-output"} {
		assert.Contains(t, res.Stdout, name)
	}
	assert.Contains(t, res.Stdout, "data/output.csv")
	assert.NotContains(t, res.Stdout, "Found", "quiet suppresses the summary")

	res, err = f.CLI([]string{"catalog", "list"}, []string{"--pipeline", "missing"})
	require.NoError(t, err)
	require.ErrorIs(t, res.Err, flow.ErrPipelineNotFound)
}

func TestInfo(t *testing.T) {
	f := newProject(t)
	res, err := f.CLI([]string{"info"}, nil)
	require.NoError(t, err)
	require.True(t, res.Success(), res.Output)
	assert.Contains(t, res.Stdout, "flow")
	assert.Contains(t, res.Stdout, "version: "+version.Version)
	assert.Contains(t, res.Stdout, "package: proj")

	chdir(t, t.TempDir())
	cmd, err := clirunner.Find(cli.NewCommand(), []string{"info"})
	require.NoError(t, err)
	res = (&clirunner.Runner{}).Invoke(context.Background(), cmd, nil)
	require.True(t, res.Success(), res.Output)
	assert.Contains(t, res.Stdout, "project: none")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
