// Package main implements the lighthouse-mcp CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lighthouse-mcp-server/internal/audit"
	"lighthouse-mcp-server/internal/browser"
	"lighthouse-mcp-server/internal/config"
	"lighthouse-mcp-server/internal/mcp"
	"lighthouse-mcp-server/internal/tools"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "0.1.0"

var (
	cfgPath string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lighthouse-mcp",
	Short: "MCP server exposing Lighthouse audits and screenshots",
	Long: `lighthouse-mcp is an MCP (Model Context Protocol) server that exposes two
tools backed by a shared headless browser session:

  run-lighthouse   audit a page and summarize per-category scores
  take-screenshot  capture a page as JPEG

The server speaks JSON-RPC 2.0 over stdio; all logging goes to stderr.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over stdio",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lighthouse-mcp %s\n", version)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if !verbose {
		if level, parseErr := zapcore.ParseLevel(cfg.Logging.Level); parseErr == nil {
			zapCfg := zap.NewProductionConfig()
			zapCfg.Level = zap.NewAtomicLevelAt(level)
			if rebuilt, buildErr := zapCfg.Build(); buildErr == nil {
				logger = rebuilt
			}
		}
	}

	for _, dir := range []string{cfg.Output.GetReportsDir(), cfg.Output.GetScreenshotsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	sessions := browser.NewManager(cfg.Browser, logger.Named("browser"))
	runner := audit.NewRunner(cfg.Audit, logger.Named("audit"))
	pipeline := tools.NewPipeline(sessions, runner, cfg.Output, logger.Named("pipeline"))

	server := mcp.NewServer(cfg.Server.Name, version, logger.Named("mcp"))
	server.Register(tools.NewRunLighthouseTool(pipeline, logger.Named("tools")))
	server.Register(tools.NewTakeScreenshotTool(pipeline, logger.Named("tools")))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Force-close the session best effort on termination; an in-flight audit
	// is abandoned, not flushed.
	go func() {
		<-ctx.Done()
		_ = sessions.Close()
	}()

	logger.Info("lighthouse-mcp serving on stdio",
		zap.String("version", version),
		zap.Int("debug_port", cfg.Browser.GetDebugPort()))

	err = server.ServeStdio(ctx, os.Stdin, os.Stdout)
	if closeErr := sessions.Close(); closeErr != nil {
		logger.Warn("failed to close session on shutdown", zap.Error(closeErr))
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
