package shadergen

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"
)

// Options configures a Generator.
type Options struct {
	ToolchainRoot string // used for diagnostics only
	Dir           string // shader source directory
	Header        string // generated header path
	Naming        Naming
}

// Generator compiles every shader in a directory and embeds the results in
// one generated header. It runs strictly one shader at a time.
type Generator struct {
	opts     Options
	compiler Compiler
	log      *zap.Logger
}

// New returns a Generator. A nil logger discards diagnostics.
func New(opts Options, compiler Compiler, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Naming == "" {
		opts.Naming = NamingStrip
	}
	return &Generator{opts: opts, compiler: compiler, log: log}
}

// entry is a planned declaration.
type entry struct {
	src   Source
	ident string
	out   string
}

// Plan discovers sources and assigns identifiers without compiling anything.
// It fails with *DuplicateSymbolError when two sources share an identifier.
func (g *Generator) Plan() ([]Source, error) {
	entries, err := g.plan()
	if err != nil {
		return nil, err
	}
	sources := make([]Source, len(entries))
	for i, e := range entries {
		sources[i] = e.src
	}
	return sources, nil
}

func (g *Generator) plan() ([]entry, error) {
	sources, err := Discover(g.opts.Dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(sources))
	entries := make([]entry, 0, len(sources))
	for _, src := range sources {
		ident := src.Identifier(g.opts.Naming)
		if first, ok := seen[ident]; ok {
			return nil, &DuplicateSymbolError{Identifier: ident, First: first, Second: src.Name}
		}
		seen[ident] = src.Name
		entries = append(entries, entry{src: src, ident: ident, out: src.OutputPath()})
	}
	return entries, nil
}

// Run compiles all shaders and writes the header. Any failure aborts the run;
// whatever was already written to the header is left in place.
func (g *Generator) Run(ctx context.Context) error {
	g.log.Info("VULKAN_SDK=" + g.opts.ToolchainRoot)
	g.log.Info("shaders directory=" + g.opts.Dir)

	entries, err := g.plan()
	if err != nil {
		return err
	}

	f, err := os.Create(g.opts.Header)
	if err != nil {
		return ioError("creating", g.opts.Header, err)
	}
	defer f.Close()

	hw := NewHeaderWriter(f)
	hw.WritePreamble()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.embed(ctx, hw, e); err != nil {
			return err
		}
	}

	if err := hw.Flush(); err != nil {
		return ioError("writing", g.opts.Header, err)
	}
	if err := f.Close(); err != nil {
		return ioError("closing", g.opts.Header, err)
	}

	g.log.Debug("header written",
		zap.String("path", g.opts.Header),
		zap.Int("shaders", len(entries)),
	)
	return nil
}

func (g *Generator) embed(ctx context.Context, hw *HeaderWriter, e entry) error {
	if err := g.compiler.Compile(ctx, e.src.Path, e.out); err != nil {
		var toolErr *ToolError
		if errors.As(err, &toolErr) && toolErr.Output == nil {
			if _, statErr := os.Stat(e.out); statErr != nil {
				toolErr.Output = ioError("reading", e.out, statErr)
			}
		}
		return err
	}

	data, err := os.ReadFile(e.out)
	if err != nil {
		return ioError("reading", e.out, err)
	}

	hw.WriteDeclaration(e.ident, data)
	if err := hw.Err(); err != nil {
		return ioError("writing", g.opts.Header, err)
	}

	g.log.Debug("embedded shader",
		zap.String("source", e.src.Name),
		zap.String("identifier", e.ident),
		zap.Int("bytes", len(data)),
	)
	return nil
}
