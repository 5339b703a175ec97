// pkg/fixture/digest.go
package fixture

import (
	"fmt"

	"golang.org/x/mod/sumdb/dirhash"
)

// Digest hashes every file below the root. Two trees with the same relative
// paths and contents have the same digest.
func (f *Fixture) Digest() (string, error) {
	sum, err := dirhash.HashDir(f.fs.Root, "", dirhash.DefaultHash)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", f.fs.Root, err)
	}
	return sum, nil
}
