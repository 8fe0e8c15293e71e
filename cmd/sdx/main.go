package main

import (
	"os"

	"sdx/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
