// pkg/project/metadata.go
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrNoManifest is returned when the project root has no pyproject.toml.
	ErrNoManifest = errors.New("no project manifest")

	// ErrInvalidManifest is returned when the manifest cannot be parsed or
	// fails validation.
	ErrInvalidManifest = errors.New("invalid project manifest")

	// ErrIncompatibleVersion is returned when the project was generated for a
	// different framework release.
	ErrIncompatibleVersion = errors.New("incompatible project version")
)

// identifierPattern matches names usable as Python package and module names.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("project: register identifier validation: %v", err))
	}
	return v
}

// IsIdentifier reports whether name can be used as a package or pipeline name.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Metadata describes a project as declared by its manifest.
type Metadata struct {
	PackageName    string `toml:"package_name" validate:"required,identifier"`
	ProjectName    string `toml:"project_name" validate:"required"`
	ProjectVersion string `toml:"project_version" validate:"required,semver"`
	SourceDir      string `toml:"source_dir,omitempty"`

	// ProjectPath is the absolute project root. It is not read from the manifest.
	ProjectPath string `toml:"-"`
}

type manifest struct {
	Tool struct {
		Kedro *Metadata `toml:"kedro"`
	} `toml:"tool"`
}

// ManifestLines renders the manifest content for a project.
func ManifestLines(name, frameworkVersion string) []string {
	return []string{
		"[tool.kedro]",
		fmt.Sprintf("package_name=%q", name),
		fmt.Sprintf("project_name=%q", name),
		fmt.Sprintf("project_version=%q", frameworkVersion),
	}
}

// LoadMetadata reads and validates <root>/pyproject.toml.
func LoadMetadata(root string) (*Metadata, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}

	path := filepath.Join(absRoot, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, path)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	meta, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	meta.ProjectPath = absRoot
	return meta, nil
}

// ParseManifest decodes the [tool.kedro] table of a manifest.
func ParseManifest(data []byte) (*Metadata, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if m.Tool.Kedro == nil {
		return nil, fmt.Errorf("%w: missing [tool.kedro] table", ErrInvalidManifest)
	}

	meta := m.Tool.Kedro
	if meta.SourceDir == "" {
		meta.SourceDir = SourceRoot
	}
	if err := validate.Struct(meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return meta, nil
}

// PackagePath returns the absolute path of the project's source package.
func (m *Metadata) PackagePath() string {
	return filepath.Join(m.ProjectPath, m.SourceDir, m.PackageName)
}

// CheckCompatible verifies that a project generated for projectVersion can be
// run by frameworkVersion: major and minor must match. Framework builds that
// are not semantic versions (for example "dev") accept any project.
func CheckCompatible(projectVersion, frameworkVersion string) error {
	fw, err := semver.NewVersion(frameworkVersion)
	if err != nil {
		return nil
	}
	pv, err := semver.NewVersion(projectVersion)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version", ErrIncompatibleVersion, projectVersion)
	}
	if pv.Major() != fw.Major() || pv.Minor() != fw.Minor() {
		return fmt.Errorf("%w: project version %s does not match framework version %s",
			ErrIncompatibleVersion, pv, fw)
	}
	return nil
}
