// pkg/flow/dataset.go
package flow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DataSet loads and saves one named piece of pipeline data.
type DataSet interface {
	Load() (any, error)
	Save(data any) error
	Exists() bool
	// Describe returns the type name shown in logs and listings.
	Describe() string
}

// Dataset type names accepted in catalog files. Both spellings of the CSV
// type are in use across framework releases.
const (
	TypeCSV       = "pandas.CSVDataSet"
	TypeCSVNew    = "pandas.CSVDataset"
	TypeMemory    = "MemoryDataSet"
	TypeMemoryNew = "MemoryDataset"
)

// NewDataSet builds the dataset described by spec. Relative file paths are
// resolved against root.
func NewDataSet(root string, spec DataSetSpec) (DataSet, error) {
	switch spec.Type {
	case TypeCSV, TypeCSVNew:
		if spec.Filepath == "" {
			return nil, fmt.Errorf("dataset %s: filepath is required for %s", spec.Name, spec.Type)
		}
		path := filepath.FromSlash(spec.Filepath)
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		return &CSVDataSet{Path: path}, nil
	case TypeMemory, TypeMemoryNew, "":
		return &MemoryDataSet{}, nil
	default:
		return nil, fmt.Errorf("dataset %s: unsupported type %q", spec.Name, spec.Type)
	}
}

// CSVDataSet stores a *Table as a CSV file.
type CSVDataSet struct {
	Path string
}

// Load reads the file into a *Table.
func (d *CSVDataSet) Load() (any, error) {
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadTable(f)
}

// Save writes a *Table, creating parent directories.
func (d *CSVDataSet) Save(data any) error {
	table, ok := data.(*Table)
	if !ok {
		return fmt.Errorf("csv dataset %s: cannot save %T", d.Path, data)
	}
	if err := os.MkdirAll(filepath.Dir(d.Path), 0o755); err != nil {
		return err
	}
	var sb strings.Builder
	if err := table.WriteCSV(&sb); err != nil {
		return err
	}
	return os.WriteFile(d.Path, []byte(sb.String()), 0o644)
}

// Exists reports whether the file is present.
func (d *CSVDataSet) Exists() bool {
	_, err := os.Stat(d.Path)
	return err == nil
}

// Describe returns the dataset type name.
func (d *CSVDataSet) Describe() string { return "CSVDataSet" }

// MemoryDataSet keeps data in process for the duration of a run.
type MemoryDataSet struct {
	mu   sync.RWMutex
	data any
	set  bool
}

// Load returns the saved value.
func (d *MemoryDataSet) Load() (any, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.set {
		return nil, os.ErrNotExist
	}
	return d.data, nil
}

// Save replaces the stored value.
func (d *MemoryDataSet) Save(data any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data, d.set = data, true
	return nil
}

// Exists reports whether a value was saved.
func (d *MemoryDataSet) Exists() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.set
}

// Describe returns the dataset type name.
func (d *MemoryDataSet) Describe() string { return "MemoryDataSet" }

// ParamDataSet exposes a parameter value read-only.
type ParamDataSet struct {
	Value any
}

// Load returns the parameter value.
func (d *ParamDataSet) Load() (any, error) { return d.Value, nil }

// Save rejects writes.
func (d *ParamDataSet) Save(any) error { return fmt.Errorf("parameters are read-only") }

// Exists always reports true.
func (d *ParamDataSet) Exists() bool { return true }

// Describe returns the dataset type name.
func (d *ParamDataSet) Describe() string { return "MemoryDataSet" }
