package shadergen

import (
	"bufio"
	"io"
)

// ArrayType is the C++ type of every generated declaration.
const ArrayType = "std::vector<uint8_t>"

// Preamble opens every generated header.
const Preamble = "#pragma once\n#include <vector>\n\n"

const hexDigits = "0123456789ABCDEF"

// HeaderWriter appends declarations to a generated header. The first write
// error sticks and is returned by Err and Flush.
type HeaderWriter struct {
	w   *bufio.Writer
	err error
}

// NewHeaderWriter wraps w. Nothing is written until WritePreamble or
// WriteDeclaration is called.
func NewHeaderWriter(w io.Writer) *HeaderWriter {
	return &HeaderWriter{w: bufio.NewWriter(w)}
}

// WritePreamble writes the include guard and the vector include.
func (h *HeaderWriter) WritePreamble() {
	h.writeString(Preamble)
}

// WriteDeclaration appends one line:
//
//	static const std::vector<uint8_t> name = {0x03, 0x02};
func (h *HeaderWriter) WriteDeclaration(name string, data []byte) {
	h.writeString("static const " + ArrayType + " " + name + " = {")
	h.writeString(FormatBytes(data))
	h.writeString("};\n")
}

// Err returns the first write error, if any.
func (h *HeaderWriter) Err() error {
	return h.err
}

// Flush writes buffered data to the underlying writer.
func (h *HeaderWriter) Flush() error {
	if h.err != nil {
		return h.err
	}
	h.err = h.w.Flush()
	return h.err
}

func (h *HeaderWriter) writeString(s string) {
	if h.err != nil {
		return
	}
	_, h.err = h.w.WriteString(s)
}

// FormatBytes renders data as "0xAA, 0xBB, ..." with uppercase hex digits.
func FormatBytes(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(data)*6-2)
	for i, b := range data {
		if i > 0 {
			buf = append(buf, ',', ' ')
		}
		buf = append(buf, '0', 'x', hexDigits[b>>4], hexDigits[b&0x0F])
	}
	return string(buf)
}
