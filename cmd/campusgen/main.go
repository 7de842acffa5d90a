// Command campusgen generates synthetic campus activity datasets.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/campusgen/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "campusgen:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
