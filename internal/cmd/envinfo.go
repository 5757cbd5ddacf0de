package cmd

import (
	"fmt"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/maxrange/maxrange/internal/config"
	"github.com/maxrange/maxrange/internal/observability"
)

var envInfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display environment information",
	Long:  "Display version, runtime, and effective configuration information.",
	Run: func(cmd *cobra.Command, args []string) {
		version := crucible.GetVersion()
		log := observability.CLILogger

		log.Info("=== maxrange Environment Information ===")
		log.Info("")

		log.Info("Application:")
		log.Info("  Name:       " + config.AppName)
		log.Info("  Version:    " + versionInfo.Version)
		log.Info("  Commit:     " + versionInfo.Commit)
		log.Info("  Built:      " + versionInfo.BuildDate)
		log.Info("")

		log.Info("SSOT:")
		log.Info("  Gofulmen:   "+version.Gofulmen, zap.String("gofulmen_version", version.Gofulmen))
		log.Info("  Crucible:   "+version.Crucible, zap.String("crucible_version", version.Crucible))
		log.Info("")

		log.Info("Runtime:")
		log.Info("  Go Version: "+runtime.Version(), zap.String("go_version", runtime.Version()))
		log.Info("  GOOS:       "+runtime.GOOS, zap.String("goos", runtime.GOOS))
		log.Info("  GOARCH:     "+runtime.GOARCH, zap.String("goarch", runtime.GOARCH))
		log.Info(fmt.Sprintf("  NumCPU:     %d", runtime.NumCPU()), zap.Int("num_cpu", runtime.NumCPU()))
		log.Info("")

		cfg := config.GetConfig()
		if cfg == nil {
			log.Warn("Config not loaded")
			return
		}

		configFile := viper.ConfigFileUsed()
		if configFile == "" {
			configFile = "(none)"
		}

		log.Info("Configuration:")
		log.Info("  Config File:    "+configFile, zap.String("config_file", configFile))
		log.Info("  Default Path:   "+config.DefaultConfigPath(), zap.String("default_config_path", config.DefaultConfigPath()))
		log.Info("  Log Level:      "+cfg.Logging.Level, zap.String("log_level", cfg.Logging.Level))
		log.Info("  Log Profile:    "+cfg.Logging.Profile, zap.String("log_profile", cfg.Logging.Profile))
		log.Info("  Output Format:  "+cfg.Output.Format, zap.String("output_format", cfg.Output.Format))
		log.Info(fmt.Sprintf("  Workers:        %d", cfg.Workers), zap.Int("workers", cfg.Workers))
		log.Info(fmt.Sprintf("  Oracle:         %t (max length %d)", cfg.Verify.Oracle, cfg.Verify.OracleMaxLength),
			zap.Bool("oracle", cfg.Verify.Oracle), zap.Int("oracle_max_length", cfg.Verify.OracleMaxLength))
		log.Info("  Batch Timeout:  "+cfg.Batch.Timeout.String(), zap.Duration("batch_timeout", cfg.Batch.Timeout))
		log.Info(fmt.Sprintf("  Metrics:        %t (port %d)", cfg.Metrics.Enabled, cfg.Metrics.Port),
			zap.Bool("metrics_enabled", cfg.Metrics.Enabled), zap.Int("metrics_port", cfg.Metrics.Port))
	},
}

func init() {
	rootCmd.AddCommand(envInfoCmd)
}
