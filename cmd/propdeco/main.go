// Command propdeco runs and inspects decorated property scenarios.
package main

import (
	"os"

	"github.com/mesh-intelligence/propdeco/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
