// Package main provides the token registry CLI entry point.
package main

import (
	"os"

	"monad-token-registry/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
