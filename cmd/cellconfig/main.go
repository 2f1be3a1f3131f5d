package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"xdao.co/cellconfig/logtrace"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks failures caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func run(args []string, out io.Writer, errOut io.Writer) int {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	err := root.Execute()
	logtrace.Sync()
	if err == nil {
		return 0
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return 2
	}
	return 1
}
