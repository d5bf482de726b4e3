// Command ewpregistry admits EWP discovery manifests the way the Registry
// Service does: it validates them against the bundled schemas, applies the
// security constraints and prints the resulting notices.
//
// Exit codes: 0 when no ERROR notice was raised, 1 when some were, 2 when
// the document could not be built at all or the configuration is broken.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

// exitError ends the command with a status code and no further output.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	var ee *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintf(stderr, "Fatal: %v\n", err)
		return 2
	}
}
