// Package shadergen compiles GLSL shader sources to SPIR-V with an external
// compiler and embeds the compiled bytes in a generated C++ header.
//
// For a shader directory holding test.vert, the generated header reads:
//
//	#pragma once
//	#include <vector>
//
//	static const std::vector<uint8_t> test = {0x03, 0x02, 0x23, 0xF0};
package shadergen
