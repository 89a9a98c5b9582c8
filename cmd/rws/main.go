// Command rws is a console tool for commanding an ABB robot controller over
// Robot Web Services.
package main

import (
	"fmt"
	"os"

	"github.com/s3904419/go-rws/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
