package shadergen

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeGLSLC stands in for glslc: sources whose name contains "bad" fail with
// a diagnostic on stderr, everything else compiles to 03 02 23 F0.
const fakeGLSLC = `#!/bin/sh
case "$1" in
  *bad*) echo "$1:1: error: syntax error" >&2; exit 2 ;;
esac
[ "$2" = "-o" ] || { echo "usage: glslc <in> -o <out>" >&2; exit 64; }
printf '\003\002\043\360' > "$3"
`

// slowGLSLC hangs in a child process that keeps the output pipes open.
const slowGLSLC = `#!/bin/sh
sleep 5
`

func writeFakeCompiler(t *testing.T) string {
	t.Helper()
	return writeScript(t, fakeGLSLC)
}

func writeScript(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler is a shell script")
	}
	path := filepath.Join(t.TempDir(), "glslc")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake compiler: %v", err)
	}
	return path
}

func TestExecCompilerSuccess(t *testing.T) {
	bin := writeFakeCompiler(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "test.vert")
	out := filepath.Join(dir, "test.spv")

	core, logs := observer.New(zapcore.InfoLevel)
	c := NewExecCompiler(bin, zap.New(core))
	if err := c.Compile(context.Background(), in, out); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if string(data) != "\x03\x02\x23\xF0" {
		t.Errorf("unexpected output %x", data)
	}

	want := strings.Join([]string{bin, in, "-o", out}, " ")
	if n := logs.FilterMessage(want).Len(); n != 1 {
		t.Errorf("expected command line %q to be logged once, got %d", want, n)
	}
}

func TestExecCompilerExitStatus(t *testing.T) {
	bin := writeFakeCompiler(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.frag")
	out := filepath.Join(dir, "bad.spv")

	err := NewExecCompiler(bin, nil).Compile(context.Background(), in, out)

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if toolErr.ExitCode != 2 {
		t.Errorf("expected exit code 2, got %d", toolErr.ExitCode)
	}
	if !strings.Contains(toolErr.Stderr, "syntax error") {
		t.Errorf("expected captured stderr, got %q", toolErr.Stderr)
	}
	if toolErr.Args[0] != bin || toolErr.Args[2] != "-o" {
		t.Errorf("unexpected args %v", toolErr.Args)
	}
}

func TestExecCompilerIgnoreExit(t *testing.T) {
	bin := writeFakeCompiler(t)
	dir := t.TempDir()

	c := NewExecCompiler(bin, nil)
	c.IgnoreExit = true
	if err := c.Compile(context.Background(), filepath.Join(dir, "bad.frag"), filepath.Join(dir, "bad.spv")); err != nil {
		t.Errorf("expected exit status to be ignored, got %v", err)
	}
}

func TestExecCompilerMissingBinary(t *testing.T) {
	dir := t.TempDir()
	c := NewExecCompiler(filepath.Join(dir, "no-such-glslc"), nil)

	err := c.Compile(context.Background(), filepath.Join(dir, "a.vert"), filepath.Join(dir, "a.spv"))
	if err == nil {
		t.Fatal("expected error for missing compiler")
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		t.Errorf("missing binary should not be a ToolError, got %v", err)
	}
}

func TestRunWithExecCompiler(t *testing.T) {
	bin := writeFakeCompiler(t)

	t.Run("embeds", func(t *testing.T) {
		dir, header := setupDir(t, "test.vert", "readme.txt")
		g := New(Options{Dir: dir, Header: header}, NewExecCompiler(bin, nil), nil)
		if err := g.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		want := Preamble + "static const std::vector<uint8_t> test = {0x03, 0x02, 0x23, 0xF0};\n"
		if got := readHeader(t, header); got != want {
			t.Errorf("unexpected header:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("exit checked", func(t *testing.T) {
		dir, header := setupDir(t, "bad.vert")
		err := New(Options{Dir: dir, Header: header}, NewExecCompiler(bin, nil), nil).Run(context.Background())

		var toolErr *ToolError
		if !errors.As(err, &toolErr) {
			t.Fatalf("expected ToolError, got %v", err)
		}
		if !errors.Is(err, ErrIO) || !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected missing output to be reported, got %v", err)
		}
	})

	t.Run("exit ignored", func(t *testing.T) {
		dir, header := setupDir(t, "bad.vert")
		c := NewExecCompiler(bin, nil)
		c.IgnoreExit = true

		err := New(Options{Dir: dir, Header: header}, c, nil).Run(context.Background())
		if !errors.Is(err, ErrIO) {
			t.Fatalf("expected ErrIO, got %v", err)
		}
		var toolErr *ToolError
		if errors.As(err, &toolErr) {
			t.Errorf("did not expect ToolError with exit check off")
		}
	})
}

func TestExecCompilerCancelled(t *testing.T) {
	bin := writeScript(t, slowGLSLC)

	for _, ignoreExit := range []bool{false, true} {
		name := "exit checked"
		if ignoreExit {
			name = "exit ignored"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			c := NewExecCompiler(bin, nil)
			c.IgnoreExit = ignoreExit

			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			start := time.Now()
			err := c.Compile(ctx, filepath.Join(dir, "a.vert"), filepath.Join(dir, "a.spv"))
			elapsed := time.Since(start)

			if !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("expected context.DeadlineExceeded, got %v", err)
			}
			var toolErr *ToolError
			if errors.As(err, &toolErr) {
				t.Errorf("cancellation reported as compiler failure: %v", err)
			}
			if elapsed > 3*time.Second {
				t.Errorf("Compile took %v after cancellation", elapsed)
			}
		})
	}
}

func TestRunCancelledSkipsStaleOutput(t *testing.T) {
	bin := writeScript(t, slowGLSLC)
	dir, header := setupDir(t, "a.vert")
	if err := os.WriteFile(filepath.Join(dir, "a.spv"), []byte{0xDE, 0xAD}, 0644); err != nil {
		t.Fatal(err)
	}

	c := NewExecCompiler(bin, nil)
	c.IgnoreExit = true

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := New(Options{Dir: dir, Header: header}, c, nil).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if got := readHeader(t, header); strings.Contains(got, "0xDE") {
		t.Errorf("stale output embedded after cancellation:\n%s", got)
	}
}
