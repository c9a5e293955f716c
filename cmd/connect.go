/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect <port>",
	Short: "Open the interactive terminal connected to a port",
	Long: `Start the interactive terminal with the given port selected and opened.

The port does not have to appear in the port list, so pseudo-terminals
and other devices outside the usual patterns can be used too.

Example usage:
  serialterm connect /dev/ttyUSB0
  serialterm connect /dev/ttyUSB0 --baud 9600
  serialterm connect /dev/pts/4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(args[0])
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
