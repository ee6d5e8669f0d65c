package main

import (
	"fmt"
	"os"

	"github.com/tacslabs/tacs-console/cmd/tacsctl/cli"
)

// Set via -ldflags at build time
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
