// Package cmd is for command line interactions with the pipekit application
package cmd

import (
	"fmt"
	"os"

	"github.com/jjtimmons/pipekit/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// conf is loaded before any subcommand runs
	conf *config.Config

	// logger writes to stderr, stdout is kept for results
	logger = zap.NewNop()
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "pipekit",
	Short: `Support tools for transcriptome assembly and annotation pipelines.
Annotate BLAST hits, plan database builds and parse assembly quality reports`,
	Version:       "0.1.0",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if conf, err = config.New(viper.GetViper()); err != nil {
			return err
		}

		logger, err = newLogger(conf.Log, viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger builds a production zap logger at the configured level.
func newLogger(c config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = c.Encoding
	if zc.Encoding == "console" {
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

func init() {
	// settings is an optional YAML file with paths, tools, databases and metric sources
	RootCmd.PersistentFlags().StringP("settings", "s", "", "settings file")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug messages to stderr")
	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}
