package main

import (
	"os"

	"github.com/ariel-frischer/astroname/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
