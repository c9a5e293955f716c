/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/tui/components"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen <port>",
	Short: "Stream data from a serial port to stdout",
	Long: `Open a serial port without the interactive terminal and stream
everything it receives to stdout until interrupted (Ctrl+C) or the device
goes away.

With --output the received bytes are also appended to a file, so captures
can be resumed without overwriting earlier data. With --hex each received
chunk is printed as a line of hex bytes instead of raw data. Lifecycle
messages go to stderr.

Example usage:
  serialterm listen /dev/ttyUSB0
  serialterm listen /dev/ttyUSB0 --baud 9600 --hex
  serialterm listen /dev/ttyUSB0 --output capture.log`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")
		hexMode, _ := cmd.Flags().GetBool("hex")

		logger, closer, err := newLogger(true)
		if err != nil {
			return err
		}
		defer closer.Close()

		var capture io.Writer
		if outputPath != "" {
			file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open output file: %w", err)
			}
			defer file.Close()
			capture = file
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := append(sessionOptions(logger), serial.WithBaudRate(appConfig.Serial.BaudRate))
		return runListen(ctx, args[0], listenOptions{
			stdout:  cmd.OutOrStdout(),
			stderr:  cmd.ErrOrStderr(),
			capture: capture,
			hex:     hexMode,
		}, opts...)
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().StringP("output", "o", "", "Also append received data to this file")
	listenCmd.Flags().BoolP("hex", "x", false, "Print received data as hex")
}

type listenOptions struct {
	stdout  io.Writer
	stderr  io.Writer
	capture io.Writer // nil when not capturing
	hex     bool
}

// runListen streams one session until ctx is cancelled or the session
// ends on its own
func runListen(ctx context.Context, device string, lo listenOptions, opts ...serial.Option) error {
	session, events, err := serial.OpenSession(ctx, device, opts...)
	if err != nil {
		return err
	}
	defer session.Close()

	fmt.Fprintf(lo.stderr, "%s Opening %s...\n", infoStyle.Render("⚡"), device)

	var (
		received int64
		started  time.Time
		sessErr  error
	)
	consumeEvents(context.Background(), session, events, func(ev serial.Event) bool {
		switch ev := ev.(type) {
		case serial.Opened:
			started = time.Now()
			fmt.Fprintf(lo.stderr, "%s Listening, press Ctrl+C to stop\n", successStyle.Render("✓"))
		case serial.Data:
			received += int64(len(ev.Bytes))
			if lo.hex {
				for _, line := range components.FormatData(ev.Bytes, components.DisplayHex) {
					fmt.Fprintln(lo.stdout, line)
				}
			} else {
				lo.stdout.Write(ev.Bytes)
			}
			if lo.capture != nil {
				if _, err := lo.capture.Write(ev.Bytes); err != nil {
					sessErr = fmt.Errorf("write error: %w", err)
					session.Close()
				}
			}
		case serial.Error:
			fmt.Fprintf(lo.stderr, "%s %s\n", errorStyle.Render("✗"), ev.Message)
			if sessErr == nil {
				sessErr = ev.Err
			}
		case serial.Closed:
			fmt.Fprintf(lo.stderr, "%s Closed: %d bytes received in %v\n",
				infoStyle.Render("■"), received, time.Since(started).Round(time.Millisecond))
		}
		return true
	})
	return sessErr
}
