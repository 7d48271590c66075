// Package config handles shaderembed configuration loading and management.
package config

import "errors"

// ErrConfiguration is returned when a required configuration value is missing
// or invalid.
var ErrConfiguration = errors.New("configuration error")

// Environment variables consulted by Load.
const (
	EnvToolchainRoot = "VULKAN_SDK"
	EnvSourceRoot    = "SHADERS_SOURCE_ROOT"
)

// Identifier naming modes.
const (
	NamingStrip = "strip" // "foo.vert" -> "foo"
	NamingStage = "stage" // "foo.vert" -> "foo_vert"
)

// Config holds all embedder settings.
type Config struct {
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Shaders   ShadersConfig   `yaml:"shaders"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ToolchainConfig locates the external shader compiler.
type ToolchainConfig struct {
	Root     string `yaml:"root,omitempty"`     // Vulkan SDK installation directory
	Compiler string `yaml:"compiler,omitempty"` // Explicit compiler path, overrides Root
}

// ShadersConfig describes where shader sources live and how they are named.
type ShadersConfig struct {
	SourceRoot string `yaml:"source_root,omitempty"`
	Dir        string `yaml:"dir,omitempty"`
	Naming     string `yaml:"naming"`
	CheckExit  bool   `yaml:"check_exit"`
}

// OutputConfig holds the generated header location.
type OutputConfig struct {
	Header string `yaml:"header,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file,omitempty"`
}

// Default returns a Config with sensible default values.
// Paths are left empty and derived by Resolve.
func Default() *Config {
	return &Config{
		Shaders: ShadersConfig{
			Naming:    NamingStrip,
			CheckExit: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
