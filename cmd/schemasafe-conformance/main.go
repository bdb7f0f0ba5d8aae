// Package main is the entry point for the schemasafe conformance driver.
package main

import (
	"os"

	"github.com/streamich/schemasafe/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
