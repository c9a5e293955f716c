/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/serialterm"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// consumeEvents hands session events to fn in order until fn returns
// false, the worker exits and its queue is empty, or ctx is done. It
// reports whether fn stopped it.
func consumeEvents(ctx context.Context, session *serial.Session, events *serial.EventQueue, fn func(serial.Event) bool) bool {
	for {
		for _, ev := range events.Drain() {
			if !fn(ev) {
				return true
			}
		}

		select {
		case <-events.Ready():
		case <-session.Done():
			// Everything was queued before Done closed
			for _, ev := range events.Drain() {
				if !fn(ev) {
					return true
				}
			}
			return false
		case <-ctx.Done():
			return false
		}
	}
}
