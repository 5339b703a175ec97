// pkg/project/metadata_test.go
package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, root string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFile),
		[]byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func TestLoadMetadata(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, ManifestLines("proj", "0.19.3")...)

	meta, err := LoadMetadata(root)
	require.NoError(t, err)
	assert.Equal(t, "proj", meta.PackageName)
	assert.Equal(t, "proj", meta.ProjectName)
	assert.Equal(t, "0.19.3", meta.ProjectVersion)
	assert.Equal(t, SourceRoot, meta.SourceDir)
	assert.Equal(t, root, meta.ProjectPath)
	assert.Equal(t, filepath.Join(root, "src", "proj"), meta.PackagePath())
}

func TestLoadMetadata_Missing(t *testing.T) {
	_, err := LoadMetadata(t.TempDir())
	require.ErrorIs(t, err, ErrNoManifest)
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", "[tool.kedro\npackage_name="},
		{"missing table", "[tool.other]\nx=1"},
		{"missing package", "[tool.kedro]\nproject_name=\"p\"\nproject_version=\"0.1.0\""},
		{"bad package name", "[tool.kedro]\npackage_name=\"my-proj\"\nproject_name=\"p\"\nproject_version=\"0.1.0\""},
		{"bad version", "[tool.kedro]\npackage_name=\"p\"\nproject_name=\"p\"\nproject_version=\"latest\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.content))
			require.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestParseManifest_SourceDir(t *testing.T) {
	meta, err := ParseManifest([]byte(`[tool.kedro]
package_name = "p"
project_name = "Pretty Name"
project_version = "1.2.3"
source_dir = "lib"
`))
	require.NoError(t, err)
	assert.Equal(t, "lib", meta.SourceDir)
	assert.Equal(t, "Pretty Name", meta.ProjectName)
}

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		name      string
		project   string
		framework string
		wantErr   bool
	}{
		{"same", "0.19.3", "0.19.3", false},
		{"patch differs", "0.19.0", "0.19.7", false},
		{"minor differs", "0.18.2", "0.19.3", true},
		{"major differs", "1.19.3", "0.19.3", true},
		{"dev framework", "0.1.0", "dev", false},
		{"bad project version", "latest", "0.19.3", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatible(tt.project, tt.framework)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrIncompatibleVersion)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidator_IdentifierRule(t *testing.T) {
	require.NotPanics(t, func() { newValidator() })

	err := validate.Struct(&Metadata{PackageName: "not-valid", ProjectName: "x", ProjectVersion: "0.1.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identifier")

	require.NoError(t, validate.Struct(&Metadata{PackageName: "ok_name", ProjectName: "x", ProjectVersion: "0.1.0"}))
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("my_pipeline"))
	assert.True(t, IsIdentifier("__default__"))
	assert.False(t, IsIdentifier("my-pipeline"))
	assert.False(t, IsIdentifier("1st"))
	assert.False(t, IsIdentifier(""))
}

func TestContextHelpers(t *testing.T) {
	meta := &Metadata{PackageName: "p"}
	ctx := WithMetadata(context.Background(), meta)

	got, ok := MetadataFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, meta, got)

	_, ok = MetadataFromContext(context.Background())
	assert.False(t, ok)

	_, ok = MetadataFromContext(WithMetadata(context.Background(), nil))
	assert.False(t, ok, "nil metadata is treated as absent")
}

func TestWithMetadata_NilContext(t *testing.T) {
	//nolint:staticcheck
	ctx := WithMetadata(nil, &Metadata{})
	_, ok := MetadataFromContext(ctx)
	assert.True(t, ok)

	//nolint:staticcheck
	_, ok = MetadataFromContext(nil)
	assert.False(t, ok)
}
