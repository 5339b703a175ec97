// pkg/flow/pipeline.go
package flow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vulntor/pipetest/pkg/project"
)

// Pipeline is a named, dependency-ordered list of nodes.
type Pipeline struct {
	Name   string
	Module string
	Nodes  []Node
}

// NewPipeline orders nodes so every node runs after the producers of its
// inputs. Among independent nodes declaration order is kept.
func NewPipeline(name string, nodes []Node) (*Pipeline, error) {
	ordered, err := sortNodes(nodes)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", name, err)
	}
	return &Pipeline{Name: name, Nodes: ordered}, nil
}

func sortNodes(nodes []Node) ([]Node, error) {
	producer := make(map[string]int)
	for i, n := range nodes {
		for _, out := range n.Outputs {
			if j, dup := producer[out]; dup {
				return nil, fmt.Errorf("%w: %q is produced by both %s and %s",
					ErrInvalidPipeline, out, nodes[j].Name, n.Name)
			}
			producer[out] = i
		}
	}

	pending := make([]int, len(nodes))
	dependents := make([][]int, len(nodes))
	for i, n := range nodes {
		for _, in := range n.Inputs {
			if j, ok := producer[in]; ok {
				pending[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	done := make([]bool, len(nodes))
	out := make([]Node, 0, len(nodes))
	for len(out) < len(nodes) {
		progressed := false
		for i := range nodes {
			if done[i] || pending[i] > 0 {
				continue
			}
			done[i] = true
			progressed = true
			out = append(out, nodes[i])
			for _, d := range dependents[i] {
				pending[d]--
			}
		}
		if !progressed {
			return nil, fmt.Errorf("%w: circular dependency between nodes", ErrInvalidPipeline)
		}
	}
	return out, nil
}

// Inputs lists the datasets the pipeline reads but no node produces.
func (p *Pipeline) Inputs() []string {
	produced := make(map[string]bool)
	for _, n := range p.Nodes {
		for _, out := range n.Outputs {
			produced[out] = true
		}
	}
	seen := make(map[string]bool)
	var inputs []string
	for _, n := range p.Nodes {
		for _, in := range n.Inputs {
			if !produced[in] && !seen[in] {
				seen[in] = true
				inputs = append(inputs, in)
			}
		}
	}
	return inputs
}

// Datasets lists every dataset the pipeline touches, in first-use order.
func (p *Pipeline) Datasets() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range p.Nodes {
		for _, name := range append(append([]string(nil), n.Inputs...), n.Outputs...) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Registry maps pipeline names to pipelines, keeping registration order.
type Registry struct {
	Names     []string
	Pipelines map[string]*Pipeline
}

// Get returns the named pipeline.
func (r *Registry) Get(name string) (*Pipeline, error) {
	p, ok := r.Pipelines[name]
	if !ok {
		return nil, &NotFoundError{Kind: ErrPipelineNotFound, Name: name}
	}
	return p, nil
}

// LoadRegistry reads the project's pipeline registry and parses every
// registered pipeline module. A missing registry file yields an empty
// registry.
func LoadRegistry(meta *project.Metadata) (*Registry, error) {
	reg := &Registry{Pipelines: make(map[string]*Pipeline)}

	src, err := os.ReadFile(filepath.Join(meta.PackagePath(), project.RegistryFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return reg, nil
		}
		return nil, fmt.Errorf("read pipeline registry: %w", err)
	}

	for _, entry := range project.ParseRegistry(string(src)) {
		path := filepath.Join(meta.PackagePath(), project.PipelinesDir, entry.Module+".py")
		code, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("pipeline %s: %w", entry.Name, err)
		}
		nodes, err := ParseNodes(string(code))
		if err != nil {
			return nil, fmt.Errorf("pipeline %s: %w", entry.Name, err)
		}
		p, err := NewPipeline(entry.Name, nodes)
		if err != nil {
			return nil, err
		}
		p.Module = entry.Module

		if _, dup := reg.Pipelines[entry.Name]; !dup {
			reg.Names = append(reg.Names, entry.Name)
		}
		reg.Pipelines[entry.Name] = p
	}
	return reg, nil
}
