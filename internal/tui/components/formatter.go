package components

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/allbin/serialterm/internal/tui/styles"
)

// DisplayMode selects how received bytes become output lines
type DisplayMode int

const (
	DisplayText DisplayMode = iota
	DisplayHex
)

func (d DisplayMode) String() string {
	switch d {
	case DisplayHex:
		return "HEX"
	default:
		return "TEXT"
	}
}

// Markers written to the output log for session lifecycle changes
const (
	LineOpened     = "[opened]"
	LineClosed     = "[closed]"
	LineClosing    = "[closing...]"
	LineNotOpen    = "[not open]"
	LineBinaryData = "[binary data]"
	errorPrefix    = "[error] "
	sentPrefix     = ">> "
)

// FormatError renders an error message as an output line
func FormatError(msg string) string {
	return errorPrefix + msg
}

// FormatSent renders the echo line for submitted input
func FormatSent(input string, mode SendingMode) string {
	if mode == SendingModeHex {
		return sentPrefix + "[hex] " + input
	}
	return sentPrefix + input
}

// FormatData turns one received chunk into output lines.
//
// In text mode valid UTF-8 is split after every '\n' and '\r', keeping the
// terminators, and anything else becomes a single binary marker. In hex
// mode the chunk is one line of hex bytes followed by its printable ASCII.
func FormatData(data []byte, mode DisplayMode) []string {
	if len(data) == 0 {
		return nil
	}
	if mode == DisplayHex {
		return []string{hexLine(data)}
	}
	if !utf8.Valid(data) {
		return []string{LineBinaryData}
	}
	return splitLines(string(data))
}

// splitLines splits s after each line terminator. A trailing fragment
// without a terminator is its own line.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexAny(s, "\n\r")
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

func hexLine(data []byte) string {
	ascii := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			ascii[i] = b
		} else {
			// Non-printable
			ascii[i] = '.'
		}
	}
	return fmt.Sprintf("% X  |%s|", data, ascii)
}

// ParseHex converts hex input to bytes. Both "48 65 6C" and "48656C" are
// accepted.
func ParseHex(input string) ([]byte, error) {
	clean := strings.Join(strings.Fields(input), "")
	if clean == "" {
		return nil, errors.New("empty input")
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex string must have even number of digits (got %d)", len(clean))
	}
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

// RenderLine styles an output line for display. Terminators kept in the
// log are stripped here so they do not break the layout.
func RenderLine(line string) string {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case strings.HasPrefix(line, errorPrefix):
		return styles.ErrorLineStyle.Render(line)
	case strings.HasPrefix(line, sentPrefix):
		return styles.SentLineStyle.Render(line)
	case line == LineOpened, line == LineClosed, line == LineClosing,
		line == LineNotOpen, line == LineBinaryData:
		return styles.StatusLineStyle.Render(line)
	default:
		return line
	}
}
