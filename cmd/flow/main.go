// cmd/flow/main.go
// Command flow runs pipelines of the project in the working directory.
package main

import (
	"context"
	"os"

	"github.com/vulntor/pipetest/pkg/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
