// Package main provides the addressbook CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/addressbook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
