// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the freidok CLI. It retrieves
// publications and institutions from the FreiDok API of the University of
// Freiburg, normalizes them, and renders them as Markdown, HTML, JSON,
// CSL-YAML or through a custom template.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/freidok/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

const secretsDir = ".secrets/"

var (
	logger        = zap.NewNop()
	loadedSecrets secrets.Secrets
)

// rootCmd is the base command for the freidok CLI.
var rootCmd = &cobra.Command{
	Use:   "freidok",
	Short: "Retrieve and render publication lists from FreiDok",
	Long: `freidok retrieves publications and institutions from the FreiDok JSON API
(or a local JSON export), reduces multilingual fields to the preferred
languages, filters and formats the records, and renders them as Markdown,
HTML, JSON, CSL-YAML, or through a custom Go template.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}

		s, err := secrets.Load(secretsDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./freidok.yaml or ~/.config/freidok/freidok.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("freidok")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "freidok"))
		}
	}

	viper.SetEnvPrefix("FREIDOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	// Historical variable names.
	viper.BindEnv("source", "FREIDOK_URL")
	viper.BindEnv("langs", "FREIDOK_LANGUAGES")
	viper.BindEnv("template", "FREIDOK_TEMPLATE")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	err := rootCmd.Execute()
	if code := exitCode(err); code != ExitSuccess {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(code)
	}
}
