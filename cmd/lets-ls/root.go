package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Config holds the settings shared by every command
type Config struct {
	LogLevel       string
	LogFile        string
	LogFormat      string
	MixinsMaxDepth int
}

// Configuration keys, also usable as LETS_LS_* environment variables
const (
	keyLogLevel       = "log.level"
	keyLogFile        = "log.file"
	keyLogFormat      = "log.format"
	keyMixinsMaxDepth = "mixins.max-depth"
)

var rootCmd = &cobra.Command{
	Use:   "lets-ls",
	Short: "Language server for lets configuration files",
	Long: `lets-ls is a language server for lets task runner configuration files
(lets.yaml). It completes command names inside depends lists and file names
inside mixins lists, and jumps from a mixin entry to the included file.

Without a subcommand it serves the Language Server Protocol on stdio.

EXAMPLES:
    # Serve on stdio (what editors run)
    lets-ls

    # Debug the analysis of a file
    lets-ls inspect classify lets.yaml 7 15
    lets-ls inspect complete lets.yaml 7 15 --format json`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runServe,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write logs to FILE instead of stderr")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.Int("mixins-max-depth", 2, "Directory depth searched for mixin file candidates")

	_ = viper.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(keyLogFile, flags.Lookup("log-file"))
	_ = viper.BindPFlag(keyLogFormat, flags.Lookup("log-format"))
	_ = viper.BindPFlag(keyMixinsMaxDepth, flags.Lookup("mixins-max-depth"))
}

func initConfig() {
	viper.SetConfigName(".lets-ls")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "lets-ls"))
	}
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("LETS_LS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// stdout carries the protocol, so config notices go to stderr
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the effective settings from flags, environment and
// config file
func loadConfig(v *viper.Viper) Config {
	return Config{
		LogLevel:       v.GetString(keyLogLevel),
		LogFile:        v.GetString(keyLogFile),
		LogFormat:      v.GetString(keyLogFormat),
		MixinsMaxDepth: v.GetInt(keyMixinsMaxDepth),
	}
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
