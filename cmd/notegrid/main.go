// Command notegrid edits quotation notes kept as a small formula grid in a
// flat CSV file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vogtb/notegrid/packages/notegrid"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(newApp())
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "notegrid: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps usage mistakes to 2 and everything else to 1
func exitCode(err error) int {
	var appErr *notegrid.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case notegrid.InvalidArgument, notegrid.OutOfRange:
			return 2
		}
	}
	return 1
}
