package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < environment < flags.
// Derived paths are not filled in; call Resolve once the result is final.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyEnv(cfg, os.Getenv)

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./shaderembed.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "shaderembed")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shaderembed")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "shaderembed")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shaderembed")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv fills values from the process environment. A set variable wins
// over the config file.
func applyEnv(cfg *Config, getenv func(string) string) {
	if root := getenv(EnvToolchainRoot); root != "" {
		cfg.Toolchain.Root = root
	}
	if src := getenv(EnvSourceRoot); src != "" {
		cfg.Shaders.SourceRoot = src
	}
}

// Resolve validates the config and fills in every derived path.
// The toolchain is checked before anything touches the file system.
func (c *Config) Resolve() error {
	if c.Toolchain.Compiler == "" {
		if c.Toolchain.Root == "" {
			return fmt.Errorf("%w: %s is not set and no compiler path was given", ErrConfiguration, EnvToolchainRoot)
		}
		c.Toolchain.Compiler = CompilerPath(c.Toolchain.Root)
	}

	switch c.Shaders.Naming {
	case "":
		c.Shaders.Naming = NamingStrip
	case NamingStrip, NamingStage:
	default:
		return fmt.Errorf("%w: unknown naming mode %q", ErrConfiguration, c.Shaders.Naming)
	}

	if c.Shaders.SourceRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("%w: cannot determine working directory: %v", ErrConfiguration, err)
		}
		c.Shaders.SourceRoot = filepath.Join(wd, "src")
	}
	if c.Shaders.Dir == "" {
		c.Shaders.Dir = filepath.Join(c.Shaders.SourceRoot, "shaders")
	}
	if c.Output.Header == "" {
		c.Output.Header = filepath.Join(c.Shaders.SourceRoot, "gen_shaders.cxx")
	}
	return nil
}

// CompilerPath returns the glslc location inside a Vulkan SDK root.
func CompilerPath(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, "Bin", "glslc")
	}
	return filepath.Join(root, "bin", "glslc")
}
