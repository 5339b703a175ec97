// pkg/flow/catalog.go
package flow

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ParamsPrefix marks a node input that reads a single parameter.
const ParamsPrefix = "params:"

// ParametersName is the node input that reads every parameter.
const ParametersName = "parameters"

// Catalog resolves dataset names to datasets for one run.
type Catalog struct {
	root     string
	cfg      *ProjectConfig
	datasets map[string]DataSet
}

// NewCatalog builds the catalog declared by cfg. Datasets are instantiated
// eagerly so configuration mistakes surface before any node runs.
func NewCatalog(root string, cfg *ProjectConfig) (*Catalog, error) {
	c := &Catalog{root: root, cfg: cfg, datasets: make(map[string]DataSet)}
	for name, spec := range cfg.Catalog {
		ds, err := NewDataSet(root, spec)
		if err != nil {
			return nil, err
		}
		c.datasets[name] = ds
	}
	return c, nil
}

// Get returns the dataset for name. Parameter names resolve from the project
// parameters; other undeclared names become memory datasets.
func (c *Catalog) Get(name string) (DataSet, error) {
	if ds, ok := c.datasets[name]; ok {
		return ds, nil
	}
	switch {
	case name == ParametersName:
		return &ParamDataSet{Value: c.cfg.Parameters()}, nil
	case strings.HasPrefix(name, ParamsPrefix):
		key := strings.TrimPrefix(name, ParamsPrefix)
		v, ok := c.cfg.Param(key)
		if !ok {
			return nil, &NotFoundError{Kind: ErrDataSetNotFound, Name: name}
		}
		return &ParamDataSet{Value: v}, nil
	}
	ds := &MemoryDataSet{}
	c.datasets[name] = ds
	return ds, nil
}

// Load reads the named dataset.
func (c *Catalog) Load(name string) (any, error) {
	ds, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	data, err := ds.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Kind: ErrDataSetNotFound, Name: name}
		}
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return data, nil
}

// Save writes the named dataset.
func (c *Catalog) Save(name string, data any) error {
	ds, err := c.Get(name)
	if err != nil {
		return err
	}
	if err := ds.Save(data); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Exists reports whether name can be loaded.
func (c *Catalog) Exists(name string) bool {
	ds, err := c.Get(name)
	return err == nil && ds.Exists()
}

// List returns the declared dataset names, sorted.
func (c *Catalog) List() []string {
	names := make([]string, 0, len(c.cfg.Catalog))
	for name := range c.cfg.Catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
