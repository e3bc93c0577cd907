// Command orderload loads order event JSON into a normalized SQLite database.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/orderload/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
