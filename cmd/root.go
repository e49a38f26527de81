/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ansa",
	Short: "The action handler for a phone answering agent.",
	Long: `The action handler for a phone answering agent.

A conversational agent runtime invokes ansa during a phone call to check a
number against a reputation service, persist call records, and notify the
owner. The same binary serves as the Lambda entrypoint and as an operator
CLI for inspecting stored records.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		InitConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/ansa/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("spamcheck.enabled", false)
	viper.SetDefault("spamcheck.secret_name", "caller-agent/numverify-api-key")
	viper.SetDefault("spamcheck.endpoint", "http://apilayer.net/api")
	viper.SetDefault("spamcheck.timeout", "10s")
	viper.SetDefault("spamcheck.spam_line_types", []string{})
	viper.SetDefault("spamcheck.review_line_types", []string{"voip"})
	viper.SetDefault("spamcheck.flag_invalid", true)

	viper.SetDefault("store.type", "bbolt")
	viper.SetDefault("store.table", "")
	viper.SetDefault("store.phone_index", "phone-number-index")

	viper.SetDefault("notifier.type", "sns")
	viper.SetDefault("notifier.sns.topic_arn", "")
	viper.SetDefault("notifier.slack.token", "")
	viper.SetDefault("notifier.slack.channel", "")
	viper.SetDefault("notifier.subject_template", "")
	viper.SetDefault("notifier.body_template", "")

	viper.SetDefault("otel.exporter.otlp.endpoint", "")
	viper.SetDefault("otel.exporter.otlp.headers", map[string]string{})
	viper.SetDefault("otel.exporter.otlp.insecure", false)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find xdg config path and set it for viper if found.
		configPath, err := xdg.ConfigFile("ansa/config.yaml")
		if err == nil {
			// Search config in the XDG config directory with name "config.yaml".
			viper.AddConfigPath(filepath.Dir(configPath))
			viper.SetConfigName(filepath.Base(configPath))
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("ANSA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	configReadErr := viper.ReadInConfig()

	// Initialise the logger
	var programLevel = new(slog.LevelVar)
	switch strings.ToLower(viper.GetString("log.level")) {
	case "debug":
		programLevel.Set(slog.LevelDebug)
	case "warn":
		programLevel.Set(slog.LevelWarn)
	case "error":
		programLevel.Set(slog.LevelError)
	default:
		programLevel.Set(slog.LevelInfo)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: programLevel})
	slog.SetDefault(slog.New(handler))

	if configReadErr != nil {
		if _, ok := configReadErr.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("config file not found")
		} else {
			slog.Warn("could not read config file, using defaults", "error", configReadErr)
		}
	}
}
