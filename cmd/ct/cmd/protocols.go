package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tormodhaugland/ct/internal/protocol"
)

var protocolsCmd = &cobra.Command{
	Use:   "protocols",
	Short: "List supported check protocols",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if jsonOut {
			return writeJSON(out, protocol.All())
		}
		for _, p := range protocol.All() {
			fmt.Fprintln(out, p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(protocolsCmd)
}
