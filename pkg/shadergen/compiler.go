package shadergen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// killWaitDelay bounds how long Compile waits for the compiler's pipes to
// close after the context kills it.
const killWaitDelay = 500 * time.Millisecond

// Compiler turns one shader source into a compiled blob at out.
type Compiler interface {
	Compile(ctx context.Context, in, out string) error
}

// ExecCompiler runs an external compiler such as glslc as
// "<Path> <in> -o <out>". It blocks until the process exits.
type ExecCompiler struct {
	Path string

	// IgnoreExit skips the exit status check. A failed compile then
	// surfaces only when its output is read.
	IgnoreExit bool

	log *zap.Logger
}

// NewExecCompiler returns a compiler that invokes the executable at path.
func NewExecCompiler(path string, log *zap.Logger) *ExecCompiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecCompiler{Path: path, log: log}
}

// Args returns the full command line used to compile in to out.
func (c *ExecCompiler) Args(in, out string) []string {
	return []string{c.Path, in, "-o", out}
}

// Compile runs the compiler. Stderr is captured and attached to the
// returned *ToolError.
func (c *ExecCompiler) Compile(ctx context.Context, in, out string) error {
	args := c.Args(in, out)
	c.log.Info(strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = killWaitDelay

	err := cmd.Run()
	if s := strings.TrimSpace(stdout.String()); s != "" {
		c.log.Debug("compiler output", zap.String("input", in), zap.String("stdout", s))
	}
	if err == nil {
		return nil
	}
	// A killed compiler is an interrupted run, never a compile result.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("running %s: %w", c.Path, ctxErr)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// The process never ran: missing binary or bad permissions.
		return fmt.Errorf("running %s: %w", c.Path, err)
	}
	if c.IgnoreExit {
		c.log.Warn("compiler exited non-zero",
			zap.String("input", in),
			zap.Int("exit_code", exitErr.ExitCode()),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
		)
		return nil
	}
	return &ToolError{
		Args:     args,
		ExitCode: exitErr.ExitCode(),
		Stderr:   stderr.String(),
		Err:      err,
	}
}
