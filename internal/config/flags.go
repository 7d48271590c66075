package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagSDK         = flag.String("sdk", "", "Vulkan SDK root (overrides $VULKAN_SDK)")
	flagCompiler    = flag.String("compiler", "", "Path to the shader compiler")
	flagSource      = flag.String("src", "", "Project source root")
	flagShaders     = flag.String("shaders", "", "Shader source directory")
	flagOut         = flag.String("out", "", "Generated header path")
	flagNaming      = flag.String("naming", "", "Identifier naming: strip or stage")
	flagNoCheckExit = flag.Bool("no-check-exit", false, "Ignore the compiler exit status")
	flagLogFile     = flag.String("log-file", "", "Also write logs to this file")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
	flagDryRun      = flag.Bool("dry-run", false, "List the shaders and identifiers without compiling")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// DryRun reports whether --dry-run was given.
func DryRun() bool {
	return *flagDryRun
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSDK != "" {
		cfg.Toolchain.Root = *flagSDK
	}
	if *flagCompiler != "" {
		cfg.Toolchain.Compiler = *flagCompiler
	}
	if *flagSource != "" {
		cfg.Shaders.SourceRoot = *flagSource
	}
	if *flagShaders != "" {
		cfg.Shaders.Dir = *flagShaders
	}
	if *flagOut != "" {
		cfg.Output.Header = *flagOut
	}
	if *flagNaming != "" {
		cfg.Shaders.Naming = *flagNaming
	}
	if *flagNoCheckExit {
		cfg.Shaders.CheckExit = false
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
