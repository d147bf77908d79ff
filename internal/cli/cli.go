// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cli implements the radial command-line interface.
//
// # Commands
//
//   - render: draw the static chart to a PNG
//   - export: write the three export variants at high resolution
//   - animate: record the build-up animation as a GIF or PNG frames
//   - hit: report the data under a canvas coordinate
//   - serve: serve charts, hit tests and metrics over HTTP
//
// Every command reads its defaults through internal/config and supports
// --verbose (-v) for debug logging.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/radial"
	"github.com/gogpu/radial/internal/config"
)

const appName = "radial"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Version is reported by --version. It is set at link time.
var Version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	configFile string
	dotenv     string
	verbose    bool
	cfg        *config.Config
}

// New creates a CLI that prints results to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		out:    out,
		dotenv: config.DefaultDotEnv,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "radial draws six-category, four-tier radial charts",
		Long:              `radial renders, exports and animates flower-shaped radial charts of scores, benchmarks and averages, and serves them over HTTP.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	root.PersistentFlags().StringVar(&c.dotenv, "dotenv", c.dotenv, "dotenv file with "+appName+" settings")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.hitCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// setup loads the configuration and installs the logger.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context(), config.WithFile(c.configFile), config.WithDotEnv(c.dotenv))
	if err != nil {
		return err
	}
	c.cfg = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: log_level: %w", config.ErrInvalidConfig, err)
	}
	if c.verbose {
		level = LogDebug
	}
	c.Logger.SetLevel(level)
	radial.SetLogger(slogger(c.Logger))

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("config loaded", "mode", cfg.Mode, "size", cfg.DisplaySize, "theme", cfg.Theme)
	return nil
}

// newChart creates a chart from the loaded configuration.
func (c *CLI) newChart(extra ...radial.Option) (*radial.Chart, error) {
	opts, err := c.cfg.ChartOptions()
	if err != nil {
		return nil, err
	}
	return radial.New(append(opts, extra...)...)
}

// createFile creates path and any missing parent directories.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}
