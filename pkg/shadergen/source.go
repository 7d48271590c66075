package shadergen

import (
	"os"
	"path/filepath"
	"strings"
)

// Naming selects how a source file name becomes a header identifier.
type Naming string

const (
	// NamingStrip drops the stage extension: "blur.frag" -> "blur".
	NamingStrip Naming = "strip"
	// NamingStage keeps the stage as a suffix: "blur.frag" -> "blur_frag".
	NamingStage Naming = "stage"
)

// Source is one shader source file found in the shader directory.
type Source struct {
	Name  string // base file name, e.g. "blur.frag"
	Path  string
	Stage Stage
}

// Discover lists dir and returns every .vert and .frag file in it, sorted by
// file name. Other entries and subdirectories are skipped.
func Discover(dir string) ([]Source, error) {
	// os.ReadDir returns entries sorted by filename, which keeps the
	// generated header identical across hosts.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioError("listing", dir, err)
	}

	var sources []Source
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stage, ok := StageFromName(e.Name())
		if !ok {
			continue
		}
		sources = append(sources, Source{
			Name:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Stage: stage,
		})
	}
	return sources, nil
}

// OutputPath returns where the compiled blob for src is written.
func (src Source) OutputPath() string {
	return strings.TrimSuffix(src.Path, src.Stage.Ext()) + CompiledExt
}

// Identifier returns the header symbol name for src.
func (src Source) Identifier(naming Naming) string {
	base := strings.TrimSuffix(src.Name, src.Stage.Ext())
	if naming == NamingStage {
		base += "_" + src.Stage.String()
	}
	return sanitizeIdentifier(base)
}

// sanitizeIdentifier maps name onto a valid C++ identifier.
func sanitizeIdentifier(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
