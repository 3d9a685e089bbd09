// ABOUTME: Entry point for the mos binary
// ABOUTME: Hands os.Args to the cobra command tree
package main

import (
	"os"

	"github.com/drylogics/marketingos/cli"
)

const version = "0.1.0"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
