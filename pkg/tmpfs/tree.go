// pkg/tmpfs/tree.go
package tmpfs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/afero"
)

// Tree renders the directory tree below path, directories and files sorted
// by name, without a line for path itself:
//
//	├── conf
//	│   ├── base
//	│   └── local
//	└── pyproject.toml
func (t *TmpFs) Tree(path string) (string, error) {
	root := tree.New()
	if err := t.fillTree(root, clean(path)); err != nil {
		return "", err
	}

	lines := strings.Split(root.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}

func (t *TmpFs) fillTree(node *tree.Tree, dir string) error {
	infos, err := afero.ReadDir(t.fs, dir)
	if err != nil {
		return fmt.Errorf("tree %s: %w", dir, err)
	}
	for _, info := range infos {
		if !info.IsDir() {
			node.Child(info.Name())
			continue
		}
		sub := tree.Root(info.Name())
		if err := t.fillTree(sub, filepath.Join(dir, info.Name())); err != nil {
			return err
		}
		node.Child(sub)
	}
	return nil
}
