package shadergen

import "strings"

// Stage is the graphics pipeline stage a shader source targets.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

// CompiledExt is the extension of compiler output written next to each source.
const CompiledExt = ".spv"

var stageExts = [...]string{
	Vertex:   ".vert",
	Fragment: ".frag",
}

// Ext returns the file extension, including the dot.
func (s Stage) Ext() string {
	return stageExts[s]
}

func (s Stage) String() string {
	return stageExts[s][1:]
}

// StageFromName reports the stage encoded in a file name's extension.
func StageFromName(name string) (Stage, bool) {
	for s, ext := range stageExts {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return Stage(s), true
		}
	}
	return 0, false
}
