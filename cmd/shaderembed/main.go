// shaderembed compiles the project's GLSL shaders to SPIR-V and embeds the
// results in a generated C++ header.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderembed/internal/config"
	"github.com/Faultbox/shaderembed/internal/logger"
	"github.com/Faultbox/shaderembed/pkg/shadergen"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	// Fails before any file system access when the toolchain is unknown
	if err := cfg.Resolve(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.DryRun() {
		if err := plan(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		logger.Error("shader embedding failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func options(cfg *config.Config) shadergen.Options {
	return shadergen.Options{
		ToolchainRoot: cfg.Toolchain.Root,
		Dir:           cfg.Shaders.Dir,
		Header:        cfg.Output.Header,
		Naming:        shadergen.Naming(cfg.Shaders.Naming),
	}
}

// plan prints what a run would compile, one "<source> -> <identifier>" per line.
func plan(cfg *config.Config) error {
	opts := options(cfg)
	sources, err := shadergen.New(opts, nil, logger.Log).Plan()
	if err != nil {
		return err
	}
	for _, src := range sources {
		fmt.Printf("%s -> %s\n", src.Path, src.Identifier(opts.Naming))
	}
	fmt.Fprintf(os.Stderr, "\n(%d shaders, header %s)\n", len(sources), opts.Header)
	return nil
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	compiler := shadergen.NewExecCompiler(cfg.Toolchain.Compiler, logger.Log)
	compiler.IgnoreExit = !cfg.Shaders.CheckExit

	g := shadergen.New(options(cfg), compiler, logger.Log)

	if err := g.Run(ctx); err != nil {
		return err
	}
	logger.Info("generated " + cfg.Output.Header)
	return nil
}
