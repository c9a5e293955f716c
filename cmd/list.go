/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/allbin/serialterm"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")

		if err := validateFilter(filterType); err != nil {
			return err
		}

		devices, err := serial.ListDevices()
		if err != nil {
			return fmt.Errorf("listing ports: %w", err)
		}

		filtered := filterDevices(devices, filterType)
		out := cmd.OutOrStdout()
		if len(filtered) == 0 {
			if filterType != "" && filterType != "all" {
				fmt.Fprintf(out, "No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Fprintln(out, "No serial ports found")
			}
			return nil
		}

		if tableFormat {
			renderTable(out, filtered)
		} else {
			renderSimple(out, filtered)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Filter by port type: usb, standard, arm, all")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

func validateFilter(filterType string) error {
	switch strings.ToLower(filterType) {
	case "", "all", "usb", "standard", "arm":
		return nil
	default:
		return fmt.Errorf("unknown filter %q (want usb, standard, arm or all)", filterType)
	}
}

// filterDevices filters the device list based on the specified filter type
func filterDevices(devices []serial.PortInfo, filterType string) []serial.PortInfo {
	filterType = strings.ToLower(filterType)
	if filterType == "" || filterType == "all" {
		return devices
	}

	var filtered []serial.PortInfo
	for _, d := range devices {
		name := strings.ToLower(d.Name)
		var keep bool
		switch filterType {
		case "usb":
			keep = strings.HasPrefix(name, "ttyusb") || strings.HasPrefix(name, "ttyacm")
		case "standard":
			keep = strings.HasPrefix(name, "ttys") && !strings.HasPrefix(name, "ttysac")
		case "arm":
			keep = strings.HasPrefix(name, "ttyama")
		}
		if keep {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// renderTable renders the device list in a styled static table format
func renderTable(w io.Writer, devices []serial.PortInfo) {
	fmt.Fprintf(w, "Found %d serial port(s):\n\n", len(devices))

	portWidth := 15
	typeWidth := 22
	deviceWidth := 40

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240"))

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s",
		portWidth, "Port",
		typeWidth, "Type",
		deviceWidth, "Device")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, d := range devices {
		label := d.Label()
		if d.IsUSB() {
			label = strings.TrimSpace(fmt.Sprintf("%s:%s %s", d.VendorID, d.ProductID, label))
		}
		row := fmt.Sprintf("%-*s %-*s %-*s",
			portWidth, d.Name,
			typeWidth, d.Description,
			deviceWidth, label)
		fmt.Fprintln(w, cellStyle.Render(row))
	}
}

// renderSimple renders the device list as one path per line
func renderSimple(w io.Writer, devices []serial.PortInfo) {
	for _, d := range devices {
		fmt.Fprintln(w, d.Path)
	}
}
