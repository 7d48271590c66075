package shadergen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIO marks failures to create, read or write a file. It is joined with the
// underlying *fs.PathError, so errors.Is works for both.
var ErrIO = errors.New("shader i/o error")

// ToolError reports a compiler invocation that exited with a non-zero status.
type ToolError struct {
	Args     []string // full command line, compiler first
	ExitCode int
	Stderr   string
	Err      error // error returned by exec

	// Output is set when the compiler also failed to leave its output file.
	Output error
}

func (e *ToolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString("\n")
		b.WriteString(s)
	}
	return b.String()
}

func (e *ToolError) Unwrap() []error {
	errs := []error{e.Err}
	if e.Output != nil {
		errs = append(errs, e.Output)
	}
	return errs
}

// DuplicateSymbolError reports two shader sources that map to the same
// header identifier.
type DuplicateSymbolError struct {
	Identifier string
	First      string
	Second     string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %q: %s and %s", e.Identifier, e.First, e.Second)
}

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
