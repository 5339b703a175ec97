// cmd/pipetest/main.go
// Command pipetest scaffolds fixture projects on disk for inspection.
package main

import (
	"os"

	"github.com/vulntor/pipetest/cmd/pipetest/commands"
)

func main() {
	if err := commands.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
