/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/config"
	"github.com/allbin/serialterm/internal/logging"
	"github.com/allbin/serialterm/internal/tui/models"
)

var (
	cfgFile   string
	appConfig config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serialterm",
	Short: "Interactive serial port terminal",
	Long: `Discover, open, read from and write to serial devices.

Without a subcommand serialterm starts the interactive terminal: a port
list, a scrolling output log and an input line. Select a port and press
Enter to open it; Enter again closes it.

Settings are read from ~/.config/serialterm/config.toml (or --config),
then SERIALTERM_* environment variables, then flags.

Example usage:
  serialterm
  serialterm --baud 9600 --log-file /tmp/serialterm.log
  serialterm connect /dev/ttyUSB0`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.New(cfgFile)
		if err != nil {
			return err
		}
		if err := bindFlags(cmd, v); err != nil {
			return err
		}
		appConfig, err = config.Decode(v)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI("")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ~/.config/serialterm/config.toml)")
	flags.IntP("baud", "b", 115200, "Baud rate")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
}

// bindFlags lets explicitly set flags override file and env values
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	bindings := map[string]string{
		"serial.baud_rate": "baud",
		"log.file":         "log-file",
		"log.level":        "log-level",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// newLogger builds the logger for a command. Headless commands log to
// stderr when no file is configured; the TUI never does.
func newLogger(headless bool) (*slog.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		File:   appConfig.Log.File,
		Level:  appConfig.Log.Level,
		Stderr: headless,
	})
}

// sessionOptions maps the loaded configuration onto session options.
// The baud rate is left out since the TUI picks its own.
func sessionOptions(logger *slog.Logger) []serial.Option {
	return []serial.Option{
		serial.WithReadTimeout(appConfig.Serial.ReadTimeout),
		serial.WithReadBufferSize(appConfig.Serial.ReadBuffer),
		serial.WithLogger(logger),
	}
}

// runTUI starts the interactive terminal, opening device first when set
func runTUI(device string) error {
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	m := models.NewSessionModel(models.Options{
		BaudRate:       appConfig.Serial.BaudRate,
		MaxOutputLines: appConfig.UI.MaxOutputLines,
		TickInterval:   appConfig.UI.TickInterval,
		Device:         device,
		SessionOptions: sessionOptions(logger),
		Logger:         logger,
	})
	defer m.Shutdown()

	logger.Info("starting terminal", "device", device, "baud", appConfig.Serial.BaudRate)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
