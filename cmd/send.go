/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/tui/components"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [data] <port>",
	Short: "Send data to a serial port",
	Long: `Send data to a serial port and optionally print the reply.

Data can be provided as:
- Command line argument: send "Hello World" /dev/ttyUSB0
- From stdin (pipe): echo "test data" | serialterm send /dev/ttyUSB0
- Interactive prompt: serialterm send /dev/ttyUSB0

With --wait the port stays open that long after the write and anything
received is printed to stdout.

Example usage:
  serialterm send "Hello World" /dev/ttyUSB0
  serialterm send "AT+GMR" /dev/ttyUSB0 --newline --wait 500ms
  serialterm send "48656c6c6f" /dev/ttyUSB0 --hex
  echo "test" | serialterm send /dev/ttyUSB0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data string
		var portPath string

		if len(args) == 1 {
			portPath = args[0]
			var err error
			data, err = readSendInput(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
		} else {
			data = args[0]
			portPath = args[1]
		}

		addNewline, _ := cmd.Flags().GetBool("newline")
		hexMode, _ := cmd.Flags().GetBool("hex")
		wait, _ := cmd.Flags().GetDuration("wait")

		payload, err := buildPayload(data, hexMode, addNewline)
		if err != nil {
			return err
		}

		logger, closer, err := newLogger(true)
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := append(sessionOptions(logger), serial.WithBaudRate(appConfig.Serial.BaudRate))
		return runSend(ctx, portPath, payload, wait, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts...)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolP("newline", "n", false, "Add newline character to the end of data")
	sendCmd.Flags().BoolP("hex", "x", false, "Interpret data as hexadecimal (e.g., '48656c6c6f' for 'Hello')")
	sendCmd.Flags().DurationP("wait", "w", 0, "Keep the port open this long and print what is received")
}

// readSendInput takes data from a pipe, or prompts when stdin is a terminal
func readSendInput(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			fmt.Fprint(prompt, infoStyle.Render("Enter data to send: "))
			scanner := bufio.NewScanner(in)
			if scanner.Scan() {
				return scanner.Text(), nil
			}
			return "", scanner.Err()
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// buildPayload turns the command line data into the bytes to write. A
// "0x" prefix is accepted in hex mode; newline is not added to hex data.
func buildPayload(data string, hexMode, addNewline bool) ([]byte, error) {
	if hexMode {
		clean := strings.NewReplacer("0x", "", "0X", "").Replace(data)
		payload, err := components.ParseHex(clean)
		if err != nil {
			return nil, fmt.Errorf("invalid hex data: %w", err)
		}
		return payload, nil
	}
	if addNewline {
		data += "\n"
	}
	return []byte(data), nil
}

// runSend writes payload once and keeps reading for wait. Write failures
// arrive as events, so the session is always closed and drained before
// reporting.
func runSend(ctx context.Context, device string, payload []byte, wait time.Duration, stdout, stderr io.Writer, opts ...serial.Option) error {
	session, events, err := serial.OpenSession(ctx, device, opts...)
	if err != nil {
		return err
	}
	defer session.Close()

	fmt.Fprintf(stderr, "%s Opening %s...\n", infoStyle.Render("⚡"), device)

	// Fails only when the worker already gave up; its events say why
	writeErr := session.Write(payload)

	var sendErr error
	handle := func(ev serial.Event) bool {
		switch ev := ev.(type) {
		case serial.Opened:
			fmt.Fprintf(stderr, "%s Connected, sending %d bytes\n", successStyle.Render("✓"), len(payload))
		case serial.Data:
			stdout.Write(ev.Bytes)
		case serial.Error:
			fmt.Fprintf(stderr, "%s %s\n", errorStyle.Render("✗"), ev.Message)
			if sendErr == nil {
				sendErr = ev.Err
			}
		}
		return true
	}

	// Give the reply time to arrive, unless the session already ended
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	consumeEvents(waitCtx, session, events, handle)

	session.Close()
	consumeEvents(context.Background(), session, events, handle)

	if sendErr != nil {
		return sendErr
	}
	if writeErr != nil {
		return writeErr
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	fmt.Fprintf(stderr, "%s Sent %d bytes\n", successStyle.Render("✓"), len(payload))
	return nil
}
