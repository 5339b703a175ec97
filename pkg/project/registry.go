// pkg/project/registry.go
package project

import (
	"fmt"
	"regexp"
	"strings"
)

// RenderRegistry renders pipeline_registry.py for the given pipelines, in order.
func RenderRegistry(pkg string, pipelines []string) []string {
	entries := make([]string, 0, len(pipelines))
	for _, p := range pipelines {
		entries = append(entries, fmt.Sprintf("%q: %s.create_pipeline()", p, p))
	}
	return []string{
		"from kedro.pipeline import Pipeline",
		fmt.Sprintf("from %s.pipelines import %s", pkg, strings.Join(pipelines, ", ")),
		"",
		"def register_pipelines():",
		"    return {" + strings.Join(entries, ", ") + "}",
		"",
	}
}

var registryEntry = regexp.MustCompile(`"([^"]+)"\s*:\s*([A-Za-z_][A-Za-z0-9_]*)\.create_pipeline\(\)`)

// RegistryEntry maps a registered pipeline name to the module providing it.
type RegistryEntry struct {
	Name   string
	Module string
}

// ParseRegistry extracts the registered pipelines from registry source, in
// declaration order.
func ParseRegistry(src string) []RegistryEntry {
	matches := registryEntry.FindAllStringSubmatch(src, -1)
	out := make([]RegistryEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, RegistryEntry{Name: m[1], Module: m[2]})
	}
	return out
}
