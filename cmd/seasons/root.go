package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/cardstack/internal/config"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "seasons",
	Short: "A swipeable stack of season cards",
	Long: `Seasons shows a stack of season cards. Drag the front card right to advance
or left to reject, or use the buttons below the stack.

Configuration is read from --config, or from $XDG_CONFIG_HOME/seasons/config.toml
when present. Built-in defaults fill in anything the file leaves out.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(logLevel, logFormat)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(cardsCmd)
	RootCmd.AddCommand(validateCmd)
}

// initLogger installs the default slog logger on stderr.
func initLogger(level, format string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig loads the configuration selected by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		slog.Debug("config loaded", "path", cfg.Source)
	}
	return cfg, nil
}
