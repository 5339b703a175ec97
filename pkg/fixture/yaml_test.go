package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadYAML(t *testing.T) {
	f := newProject(t)

	path, err := f.WriteYAML("conf/local/kedro.yml", map[string]any{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, f.FS().Abs("conf/local/kedro.yml"), path)
	assert.Equal(t, "a: b\n", read(t, f, "conf/local/kedro.yml"))

	got, err := f.ReadYAML("conf/local/kedro.yml")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "b"}, got)
}

func TestReadYAML_Errors(t *testing.T) {
	f := newProject(t)

	_, err := f.ReadYAML("missing.yml")
	require.Error(t, err)

	_, err = f.FS().Write("broken.yml", "a: [unclosed")
	require.NoError(t, err)
	_, err = f.ReadYAML("broken.yml")
	require.Error(t, err)

	_, err = f.FS().Touch("empty.yml")
	require.NoError(t, err)
	got, err := f.ReadYAML("empty.yml")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateYAML(t *testing.T) {
	tests := []struct {
		name  string
		base  map[string]any
		patch map[string]any
		want  map[string]any
	}{
		{
			name:  "flat",
			base:  map[string]any{"a": "b"},
			patch: map[string]any{"a": "c", "b": "d"},
			want:  map[string]any{"a": "c", "b": "d"},
		},
		{
			name:  "nested keeps siblings",
			base:  map[string]any{"a": map[string]any{"b": "d", "c": "e"}},
			patch: map[string]any{"a": map[string]any{"b": "f"}},
			want:  map[string]any{"a": map[string]any{"b": "f", "c": "e"}},
		},
		{
			name:  "empty patch",
			base:  map[string]any{"a": 1},
			patch: map[string]any{},
			want:  map[string]any{"a": 1},
		},
		{
			name:  "scalar replaced by subtree",
			base:  map[string]any{"a": "x", "b": 1},
			patch: map[string]any{"a": map[string]any{"c": 2}},
			want:  map[string]any{"a": map[string]any{"c": 2}, "b": 1},
		},
		{
			name:  "subtree replaced by scalar",
			base:  map[string]any{"a": map[string]any{"c": 2, "d": 3}},
			patch: map[string]any{"a": "x"},
			want:  map[string]any{"a": "x"},
		},
		{
			name:  "dotted keys preserved",
			base:  map[string]any{"spark.sql.shuffle": 4, "x": 1},
			patch: map[string]any{"x": 2},
			want:  map[string]any{"spark.sql.shuffle": 4, "x": 2},
		},
		{
			name:  "empty nested patch keeps base",
			base:  map[string]any{"a": map[string]any{"b": 1}},
			patch: map[string]any{"a": map[string]any{}},
			want:  map[string]any{"a": map[string]any{"b": 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProject(t)
			_, err := f.WriteYAML("conf/local/x.yml", tt.base)
			require.NoError(t, err)

			_, err = f.UpdateYAML("conf/local/x.yml", tt.patch)
			require.NoError(t, err)

			got, err := f.ReadYAML("conf/local/x.yml")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateYAML_Deterministic(t *testing.T) {
	f := newProject(t)
	base := map[string]any{"a": map[string]any{"b": 1, "c": map[string]any{"d": 2}}, "e": "f"}
	patch := map[string]any{"a": map[string]any{"c": "flat"}, "g": []any{1, 2}}

	var outputs []string
	for i := 0; i < 5; i++ {
		_, err := f.WriteYAML("x.yml", base)
		require.NoError(t, err)
		_, err = f.UpdateYAML("x.yml", patch)
		require.NoError(t, err)
		outputs = append(outputs, read(t, f, "x.yml"))
	}
	for _, out := range outputs[1:] {
		assert.Equal(t, outputs[0], out)
	}
	assert.Equal(t, "a:\n  b: 1\n  c: flat\ne: f\ng:\n  - 1\n  - 2\n", outputs[0])
}
