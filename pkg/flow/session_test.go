package flow

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulntor/pipetest/pkg/logging"
	"github.com/vulntor/pipetest/pkg/project"
)

func runSession(t *testing.T, meta *project.Metadata, opts RunOptions) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	s := NewSession(meta, logging.NewConsoleLogger(&buf, zerolog.InfoLevel))
	require.NotEmpty(t, s.ID)
	err := s.Run(context.Background(), opts)
	return buf.String(), err
}

func TestSession_RunScaffoldedPipeline(t *testing.T) {
	meta := newProject(t, "p")

	logs, err := runSession(t, meta, RunOptions{Pipeline: "p"})
	require.NoError(t, err, logs)

	assert.Contains(t, logs, "INFO     "+CompletedMessage)
	assert.Contains(t, logs, "Loading data from 'p-input' (CSVDataSet)...")
	assert.Contains(t, logs, "Saving data to 'p-output' (CSVDataSet)...")
	assert.Contains(t, logs, "Completed 1 out of 1 tasks")

	out, err := os.ReadFile(filepath.Join(meta.ProjectPath, "data", "output.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n1,0,2\n2,1,4\n3,2,6\n", string(out))
}

func TestSession_ParamsOverride(t *testing.T) {
	meta := newProject(t, "p")

	_, err := runSession(t, meta, RunOptions{Pipeline: "p", Params: map[string]any{"p-param": 10}})
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(meta.ProjectPath, "data", "output.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n1,0,11\n2,1,13\n3,2,15\n", string(out))
}

func TestSession_Errors(t *testing.T) {
	t.Run("unknown pipeline", func(t *testing.T) {
		logs, err := runSession(t, newProject(t, "p"), RunOptions{Pipeline: "__default__"})
		require.ErrorIs(t, err, ErrPipelineNotFound)
		assert.NotContains(t, logs, CompletedMessage)
	})

	t.Run("missing input data", func(t *testing.T) {
		meta := newProject(t, "p")
		require.NoError(t, os.Remove(filepath.Join(meta.ProjectPath, "data", "input.csv")))

		_, err := runSession(t, meta, RunOptions{Pipeline: "p"})
		require.ErrorIs(t, err, ErrDataSetNotFound)
		assert.Contains(t, err.Error(), "p-input")
	})

	t.Run("unknown function", func(t *testing.T) {
		meta := newProject(t, "p")
		writeFile(t, meta.ProjectPath, filepath.ToSlash(project.PipelinePath("proj", "p")),
			`node(func=nope, inputs="p-input", outputs="p-output")`)

		_, err := runSession(t, meta, RunOptions{Pipeline: "p"})
		require.ErrorIs(t, err, ErrFuncNotFound)
		var nodeErr *NodeError
		require.ErrorAs(t, err, &nodeErr)
		assert.Equal(t, "nope", nodeErr.Node)
	})

	t.Run("unknown runner", func(t *testing.T) {
		_, err := runSession(t, newProject(t, "p"), RunOptions{Pipeline: "p", Runner: "parallel"})
		require.Error(t, err)
	})
}

func TestSession_RegisteredFunc(t *testing.T) {
	RegisterFunc("upper_names", func(_ context.Context, inputs []any) ([]any, error) {
		table := inputs[0].(*Table)
		a, _ := table.Column("a")
		for i := range a {
			a[i] = strings.Repeat(a[i], 2)
		}
		out, err := table.With("a", a)
		return []any{out}, err
	})
	assert.Contains(t, Funcs(), "upper_names")

	meta := newProject(t, "p")
	writeFile(t, meta.ProjectPath, filepath.ToSlash(project.PipelinePath("proj", "p")),
		`node(upper_names, "p-input", "doubled")`,
		`node(identity, "doubled", "p-output")`)

	_, err := runSession(t, meta, RunOptions{Pipeline: "p"})
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(meta.ProjectPath, "data", "output.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n11,0\n22,1\n33,2\n", string(out))
}
