// pkg/project/paths.go
package project

import (
	"path/filepath"
)

// Fixed locations of a project tree, relative to the project root.
const (
	ManifestFile  = "pyproject.toml"
	SourceRoot    = "src"
	ConfDir       = "conf"
	ConfBase      = "conf/base"
	ConfLocal     = "conf/local"
	DataDir       = "data"
	ExampleData   = "data/input.csv"
	ExampleOutput = "data/output.csv"

	SettingsFile = "settings.py"
	InitFile     = "__init__.py"
	MainFile     = "__main__.py"
	RegistryFile = "pipeline_registry.py"
	PipelinesDir = "pipelines"
)

// PackageDir returns src/<pkg>.
func PackageDir(pkg string) string {
	return filepath.Join(SourceRoot, pkg)
}

// PackageFile returns src/<pkg>/<name>.
func PackageFile(pkg, name string) string {
	return filepath.Join(PackageDir(pkg), name)
}

// RegistryPath returns src/<pkg>/pipeline_registry.py.
func RegistryPath(pkg string) string {
	return PackageFile(pkg, RegistryFile)
}

// PipelinePath returns src/<pkg>/pipelines/<pipeline>.py.
func PipelinePath(pkg, pipeline string) string {
	return filepath.Join(PackageDir(pkg), PipelinesDir, pipeline+".py")
}

// CatalogPath returns conf/base/catalog/<pipeline>.yml.
func CatalogPath(pipeline string) string {
	return filepath.Join(filepath.FromSlash(ConfBase), "catalog", pipeline+".yml")
}

// ParametersPath returns conf/base/parameters/<pipeline>.yml.
func ParametersPath(pipeline string) string {
	return filepath.Join(filepath.FromSlash(ConfBase), "parameters", pipeline+".yml")
}
