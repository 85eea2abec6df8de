// Command rosterd serves the employee roster dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/rosterd/rosterd/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rosterd: %v\n", err)
		os.Exit(1)
	}
}
