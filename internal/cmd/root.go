package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/maxrange/maxrange/internal/config"
	apperrors "github.com/maxrange/maxrange/internal/errors"
	"github.com/maxrange/maxrange/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   filepath.Base(os.Args[0]),
	Short: "Count subarrays whose maximum lies in a range",
	Long: `maxrange counts the contiguous subarrays of an integer sequence whose
maximum element lies in a closed range [left, right].

Use the subcommands to count a single query, run batches of queries from
files, or verify the counter against its brute-force oracle.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Metric helpers are no-ops until a command enables the exporter.
	observability.InitDisabledMetrics()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/maxrange/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Initialize CLI logger early so we can use it in config loading
	observability.InitCLILogger(config.AppName, verbose)

	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if configDir := config.DefaultConfigDir(); configDir != "" {
			v.AddConfigPath(configDir)
		} else if verbose {
			observability.CLILogger.Warn("Could not resolve XDG config directory")
		}
		v.AddConfigPath("./config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	config.ConfigureEnv(v)
	config.SetDefaults(v)

	if err := v.ReadInConfig(); err == nil {
		observability.CLILogger.Debug("Using config file", zap.String("path", v.ConfigFileUsed()))
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case cfgFile != "" && errors.Is(err, os.ErrNotExist):
			ExitWithCode(observability.CLILogger, foundry.ExitFileNotFound, "Config file not found",
				apperrors.WrapConfigInvalid(err, "config file not found"))
		case cfgFile != "":
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Error reading config file",
				apperrors.WrapConfigInvalid(err, "config file unreadable"))
		case errors.As(err, &notFound):
			// It's OK if config file doesn't exist, we have defaults
			observability.CLILogger.Debug("No config file found, using defaults and environment variables")
		default:
			observability.CLILogger.Warn("Error reading config file", zap.Error(err))
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Invalid configuration",
			apperrors.WrapConfigInvalid(err, err.Error()))
	}

	if cfg.Logging.Profile == "structured" {
		if err := observability.InitStructuredLogger(config.AppName, cfg.Logging.Level, verbose); err != nil {
			observability.CLILogger.Warn("Falling back to CLI logger", zap.Error(err))
		}
	} else if !verbose && (cfg.Logging.Level == "debug" || cfg.Logging.Level == "trace") {
		observability.CLILogger.SetLevel(logging.DEBUG)
	}

	if cfg.Metrics.Enabled {
		if err := observability.InitMetrics(config.AppName, cfg.Metrics.Port); err != nil {
			observability.CLILogger.Warn("Failed to start metrics exporter", zap.Error(err))
		} else {
			observability.CLILogger.Debug("Metrics exporter started", zap.Int("port", observability.GetMetricsPort()))
		}
	}
}
